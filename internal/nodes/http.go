package nodes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ImplHTTP — идентификатор реализации http.
const ImplHTTP = "http"

const (
	defaultHTTPTimeout = 30 * time.Second
	maxResponseBody    = 10 * 1024 * 1024 // 10 MB
)

// Ключи параметров HTTP узла.
const (
	paramMethod     = "method"
	paramURL        = "url"
	paramHeaders    = "headers"
	paramTimeoutSec = "timeout_sec"
)

// HTTP — реализация узла http_request.
//
// Выполняет HTTP-запрос к внешнему API. Телом запроса служит вход
// "body" (если подключён), параметры задают метод, URL и заголовки.
//
// Параметры:
//
//	{
//	    "method": "POST",
//	    "url": "https://api.example.com/data",
//	    "headers": {"Authorization": "Bearer xxx"},
//	    "timeout_sec": 30
//	}
//
// Outputs:
//
//	{
//	    "response": {
//	        "status_code": 200,
//	        "body": {...}  // parsed JSON или строка
//	    }
//	}
type HTTP struct {
	client *http.Client
}

// NewHTTP создаёт новый HTTP.
func NewHTTP() *HTTP {
	return &HTTP{
		client: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// Name возвращает идентификатор реализации.
func (h *HTTP) Name() string {
	return ImplHTTP
}

// Execute выполняет HTTP-запрос.
func (h *HTTP) Execute(ctx context.Context, req *Request) (*Response, error) {
	url := GetParamString(req.Params, paramURL)
	if url == "" {
		return nil, fmt.Errorf("%w: %s: url is required", ErrInvalidParams, ImplHTTP)
	}

	method := strings.ToUpper(GetParamString(req.Params, paramMethod))
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader io.Reader
	headers := paramHeadersMap(req.Params)

	if body, ok := req.Inputs["body"]; ok && body != nil {
		bodyBytes, err := serializeBody(body)
		if err != nil {
			return nil, fmt.Errorf("serialize body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
		if _, hasContentType := headers["Content-Type"]; !hasContentType {
			headers["Content-Type"] = "application/json"
		}
	}

	if sec := GetParamInt(req.Params, paramTimeoutSec); sec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(sec)*time.Second)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := h.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", ErrHTTPRequest, err)
	}
	defer resp.Body.Close()

	return h.parseResponse(resp)
}

// parseResponse читает и парсит HTTP-ответ.
func (h *HTTP) parseResponse(resp *http.Response) (*Response, error) {
	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	var body any
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(bodyBytes, &body); err != nil {
			// Невалидный JSON возвращаем как строку.
			body = string(bodyBytes)
		}
	} else {
		body = string(bodyBytes)
	}

	return NewResponse(map[string]any{
		"response": map[string]any{
			"status_code": resp.StatusCode,
			"body":        body,
		},
	}), nil
}

// paramHeadersMap извлекает заголовки из параметров.
func paramHeadersMap(params map[string]any) map[string]string {
	headers := make(map[string]string)
	raw, ok := params[paramHeaders].(map[string]any)
	if !ok {
		return headers
	}
	for k, v := range raw {
		if s, ok := v.(string); ok {
			headers[k] = s
		}
	}
	return headers
}

// serializeBody сериализует тело запроса в bytes.
func serializeBody(body any) ([]byte, error) {
	switch v := body.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return json.Marshal(v)
	}
}
