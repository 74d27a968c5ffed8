// Package client provides a JSON-RPC 2.0 http client with timeout control.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultRequestTimeout = 20 // seconds
	defaultSlowTimeout    = 60 // seconds
)

var httpClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     60 * time.Second,
	},
}

// GetDefaultTimeout get default timeout in seconds
func GetDefaultTimeout(isSlow bool) int {
	if isSlow {
		return defaultSlowTimeout
	}
	return defaultRequestTimeout
}

// Request json-rpc request
type Request struct {
	Version string      `json:"jsonrpc"`
	ID      uint64      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

// Error json-rpc error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("json-rpc error %v: %v", e.Code, e.Message)
}

// Response json-rpc response
type Response struct {
	Version string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// RPCPost call a json-rpc method with default timeout
func RPCPost(result interface{}, url, method string, params ...interface{}) error {
	return RPCPostWithTimeout(defaultRequestTimeout, result, url, method, params...)
}

// RPCPostWithTimeout call a json-rpc method with specified timeout in seconds
func RPCPostWithTimeout(timeout int, result interface{}, url, method string, params ...interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	reqBody, err := json.Marshal(&Request{
		Version: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("marshal request failed: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := httpClient
	if timeout > 0 {
		client = &http.Client{
			Transport: httpClient.Transport,
			Timeout:   time.Duration(timeout) * time.Second,
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wrong response status %v. url=%v method=%v", resp.StatusCode, url, method)
	}

	const maxReadContentLength int64 = 1024 * 1024 * 10 // 10M
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReadContentLength))
	if err != nil {
		return fmt.Errorf("read body error: %w", err)
	}

	var rpcResp Response
	if err = json.Unmarshal(body, &rpcResp); err != nil {
		return fmt.Errorf("unmarshal body error, body is \"%v\" err=\"%w\"", string(body), err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if len(rpcResp.Result) == 0 || string(rpcResp.Result) == "null" {
		return ErrEmptyResult
	}
	return json.Unmarshal(rpcResp.Result, result)
}

// ErrEmptyResult empty result error (eg. tx or block not found)
var ErrEmptyResult = fmt.Errorf("empty result")
