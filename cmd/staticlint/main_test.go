package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/tools/go/analysis/analysistest"
)

func TestOsExitChecker(t *testing.T) {
	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, OsExitAnalyzer, "main", "notmain")
}

func TestDefaultClientChecker(t *testing.T) {
	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, DefaultClientAnalyzer, "client")
}

func TestAnalyzers(t *testing.T) {
	names := make(map[string]bool)
	for _, a := range analyzers() {
		assert.False(t, names[a.Name], "duplicate analyzer %s", a.Name)
		names[a.Name] = true
	}
	for _, name := range []string{"SA1000", "S1000", "printf", "bodyclose", "enumcase", "osexitcheck", "defaultclientcheck"} {
		assert.True(t, names[name], "analyzer %s is missing", name)
	}
}
