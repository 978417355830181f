// Package testsupport holds fixtures shared by package tests: temp-dir
// configs, pack builders (in memory and on disk), and catalog helpers.
package testsupport
