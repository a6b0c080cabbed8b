//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"faq/internal/adapter/analyzer"
	"faq/internal/adapter/cache"
	"faq/internal/adapter/kbsource"
	"faq/internal/logging"
	"faq/internal/port"
	"faq/internal/usecase"
)

const (
	defaultTopK      = 2
	defaultThreshold = 0.3
)

var engine *usecase.Engine

func init() {
	tok, err := analyzer.New(analyzer.NameGSE, "", "")
	if err != nil {
		tok = analyzer.NewBigramTokenizer()
	}
	engine = newEngine(tok)
}

func newEngine(tok port.Tokenizer) *usecase.Engine {
	return usecase.NewEngine(tok,
		usecase.WithLogger(logging.Discard()),
		usecase.WithCache(cache.NewQueryCache(64, 0)),
	)
}

func main() {
	c := make(chan struct{})

	js.Global().Set("faqLoad", js.FuncOf(loadKnowledgeBase))
	js.Global().Set("faqIndex", js.FuncOf(rebuildIndex))
	js.Global().Set("faqAsk", js.FuncOf(ask))
	js.Global().Set("faqStatus", js.FuncOf(status))
	js.Global().Set("faqKnowledgeBase", js.FuncOf(knowledgeBase))

	<-c
}

func loadKnowledgeBase(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: faqLoad(content, [filename])")
	}

	content := args[0].String()
	name := "upload.csv"
	if len(args) > 1 {
		name = args[1].String()
	}

	report, err := engine.LoadFrom(kbsource.FromBytes(name, []byte(content), ','))
	if err != nil {
		return makeError(err.Error())
	}

	return makeResult(map[string]interface{}{
		"success": true,
		"source":  report.Source,
		"read":    report.Read,
		"kept":    report.Kept,
		"dropped": report.Dropped,
	})
}

func rebuildIndex(this js.Value, args []js.Value) interface{} {
	result, err := engine.RebuildIndexResult()
	if err != nil {
		return makeError(err.Error())
	}
	return makeResult(map[string]interface{}{
		"success":        true,
		"rows":           result.Rows,
		"vocabularySize": result.VocabularySize,
	})
}

func ask(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: faqAsk(question, [topK], [threshold])")
	}

	question := args[0].String()
	topK := defaultTopK
	if len(args) > 1 && !args[1].IsUndefined() {
		topK = args[1].Int()
	}
	threshold := defaultThreshold
	if len(args) > 2 && !args[2].IsUndefined() {
		threshold = args[2].Float()
	}

	answer, err := engine.Ask(question, topK, threshold)
	if err != nil {
		return makeError(err.Error())
	}

	data, _ := json.Marshal(answer)
	return string(data)
}

func status(this js.Value, args []js.Value) interface{} {
	st := engine.Status()
	stats := engine.Stats()
	return makeResult(map[string]interface{}{
		"status":         st.Status.String(),
		"label":          st.Label,
		"error":          st.Err,
		"sessionId":      stats.SessionID,
		"rows":           stats.Rows,
		"indexed":        stats.Indexed,
		"vocabularySize": stats.VocabularySize,
		"tokenizer":      stats.Tokenizer,
	})
}

func knowledgeBase(this js.Value, args []js.Value) interface{} {
	data, _ := json.Marshal(engine.KnowledgeBase())
	return string(data)
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data map[string]interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}
