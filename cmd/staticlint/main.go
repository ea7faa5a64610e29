// Staticlint набор анализаторов проекта.
//
// Запуск: go run ./cmd/staticlint ./...
//
// Состав:
//   - staticcheck: все проверки SA и выбранные S;
//   - стандартные анализаторы golang.org/x/tools/go/analysis/passes;
//   - bodyclose: закрытие тела http-ответа;
//   - enumcase: полнота switch по перечислениям, например request.State;
//   - lintservemux: запрет http.DefaultServeMux;
//   - osexitcheck: запрет прямого вызова os.Exit в функции main пакета main;
//   - defaultclientcheck: запрет http.Get/Post/Head/PostForm и http.DefaultClient вне тестов,
//     запросы к бэкенду идут только через настроенный клиент.
package main

import (
	"strings"

	"github.com/MakeNowJust/enumcase"
	"github.com/reillywatson/lintservemux"
	"github.com/timakin/bodyclose/passes/bodyclose"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
)

func main() {
	multichecker.Main(analyzers()...)
}

func analyzers() []*analysis.Analyzer {
	// staticcheck
	extraChecks := map[string]bool{
		"S1000": true,
		"S1001": true,
		"S1002": true,
		"S1005": true,
	}

	var checks []*analysis.Analyzer
	for _, v := range staticcheck.Analyzers {
		if strings.HasPrefix(v.Analyzer.Name, "SA") {
			checks = append(checks, v.Analyzer)
		}
	}
	for _, v := range simple.Analyzers {
		if extraChecks[v.Analyzer.Name] {
			checks = append(checks, v.Analyzer)
		}
	}

	// analysis/passes
	checks = append(checks,
		printf.Analyzer,
		shadow.Analyzer,
		structtag.Analyzer,
		assign.Analyzer,
		atomic.Analyzer,
		bools.Analyzer,
		copylock.Analyzer,
		unreachable.Analyzer,
		unusedresult.Analyzer,
		errorsas.Analyzer,
		httpresponse.Analyzer,
		loopclosure.Analyzer,
		lostcancel.Analyzer,
	)

	// публичные анализаторы
	checks = append(checks,
		bodyclose.Analyzer,
		enumcase.Analyzer,
		lintservemux.Analyzer,
	)

	return append(checks, OsExitAnalyzer, DefaultClientAnalyzer)
}
