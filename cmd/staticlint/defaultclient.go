package main

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// DefaultClientAnalyzer ищет обращения к http.DefaultClient и функциям-оберткам над ним.
// У такого клиента нет таймаута, а запросы к бэкенду должны идти через настроенный клиент.
var DefaultClientAnalyzer = &analysis.Analyzer{
	Name: "defaultclientcheck",
	Doc:  "check for http.DefaultClient and http.Get/Head/Post/PostForm outside tests",
	Run:  runDefaultClient,
}

var defaultClientNames = map[string]bool{
	"DefaultClient": true,
	"Get":           true,
	"Head":          true,
	"Post":          true,
	"PostForm":      true,
}

func runDefaultClient(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		if strings.HasSuffix(pass.Fset.Position(file.Pos()).Filename, "_test.go") {
			continue
		}
		ast.Inspect(file, func(node ast.Node) bool {
			sel, ok := node.(*ast.SelectorExpr)
			if !ok || !defaultClientNames[sel.Sel.Name] {
				return true
			}
			ident, ok := sel.X.(*ast.Ident)
			if !ok {
				return true
			}
			pkgName, ok := pass.TypesInfo.Uses[ident].(*types.PkgName)
			if !ok || pkgName.Imported().Path() != "net/http" {
				return true
			}
			pass.Reportf(sel.Pos(), "don't use http.%s, use a configured client", sel.Sel.Name)
			return true
		})
	}
	return nil, nil
}
