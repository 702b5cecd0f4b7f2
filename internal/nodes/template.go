package nodes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

// ImplTemplate — идентификатор реализации template.
const ImplTemplate = "template"

// Ключ параметра с шаблоном.
const paramTemplate = "template"

// templateFuncs — дополнительные функции для шаблонов.
var templateFuncs = template.FuncMap{
	// json — сериализует значение в JSON строку
	"json": func(v any) string {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("error: %v", err)
		}
		return string(b)
	},

	// upper / lower — регистр строки
	"upper": strings.ToUpper,
	"lower": strings.ToLower,

	// trim — обрезает пробелы
	"trim": strings.TrimSpace,

	// join — объединяет слайс строк
	"join": func(sep string, items []string) string {
		return strings.Join(items, sep)
	},
}

// Template — детерминированная реализация text_generation.
//
// Рендерит Go template из параметра "template" над разрешёнными
// входами узла. Используется как реализация по умолчанию и в тестах;
// продакшн-генерацию (LLM и т.п.) регистрирует встраивающий код
// под тем же идентификатором.
//
// Параметры:
//
//	{
//	    "template": "Summary of: {{ .prompt }}"
//	}
//
// Inputs доступны в шаблоне по ключам портов: {{ .prompt }}, {{ .context }}.
//
// Outputs:
//
//	{
//	    "text": "Summary of: ..."
//	}
type Template struct{}

// NewTemplate создаёт новый Template.
func NewTemplate() *Template {
	return &Template{}
}

// Name возвращает идентификатор реализации.
func (t *Template) Name() string {
	return ImplTemplate
}

// Execute рендерит шаблон над входами узла.
func (t *Template) Execute(ctx context.Context, req *Request) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
	default:
	}

	tmplText := GetParamString(req.Params, paramTemplate)
	if tmplText == "" {
		return nil, fmt.Errorf("%w: %s: template is required", ErrInvalidParams, ImplTemplate)
	}

	tmpl, err := template.New(req.NodeID).Funcs(templateFuncs).Parse(tmplText)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, req.Inputs); err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	return NewResponse(map[string]any{
		"text": buf.String(),
	}), nil
}
