package httptool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"event_assistant/config"
	"event_assistant/pkg/tools"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	ConnectionRefusedTag = "connection refused"

	HeaderContentType     = "Content-Type"
	HeaderContentTypeJSON = "application/json"
)

type ResponseMsg struct {
	Message string `json:"message"`
}

type HTTPClient struct {
	sync.RWMutex
	hc                http.Client
	baseAddr          string
	defaultRespReader HTTPResponseReader
	header            http.Header
	clientName        string
}

type HTTPResponseReader func(*http.Response, *http.Request, time.Time) ([]byte, error)

func NewHTTPClient(baseAddr, clientName string, timeout time.Duration, transport *http.Transport, defaultRespReader HTTPResponseReader) *HTTPClient {
	ret := &HTTPClient{
		baseAddr: "http://" + baseAddr,
		hc: http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		clientName: clientName,
	}
	if defaultRespReader == nil {
		ret.defaultRespReader = ret.readResponse
	} else {
		ret.defaultRespReader = defaultRespReader
	}
	return ret
}

func (hc *HTTPClient) SetHeader(key, value string) {
	hc.Lock()
	defer hc.Unlock()

	if hc.header == nil {
		hc.header = http.Header{}
	}

	hc.header.Set(key, value)
}

func (hc *HTTPClient) GetWithContext(ctx context.Context, url string) ([]byte, error) {
	return hc.fetchWithContext(ctx, http.MethodGet, url, nil, nil)
}

func (hc *HTTPClient) PostJSONWithContext(ctx context.Context, url string, obj interface{}) ([]byte, error) {
	body, err := json.Marshal(obj)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return hc.PostWithContext(ctx, url, bytes.NewBuffer(body))
}

func (hc *HTTPClient) PostWithContext(ctx context.Context, url string, body io.Reader) ([]byte, error) {
	return hc.fetchWithContext(ctx, http.MethodPost, url, body, nil)
}

func (hc *HTTPClient) DeleteWithContext(ctx context.Context, url string) ([]byte, error) {
	return hc.fetchWithContext(ctx, http.MethodDelete, url, nil, nil)
}

func (hc *HTTPClient) fetchWithContext(ctx context.Context, method, url string, body io.Reader, respReader HTTPResponseReader) ([]byte, error) {
	targetURL := fmt.Sprintf("%v%v", hc.baseAddr, url)

	ok := config.GetInstance().GetBool(config.ClientsCommonRequestLog)
	now := time.Now()

	if ok && body != nil {
		b, _ := io.ReadAll(body)

		body = bytes.NewReader(b)
		log.Debugf("Sending %v request to %v", method, targetURL)
		log.Debugf("Body = %v", string(b))
	}

	req, err := http.NewRequestWithContext(ctx, method, targetURL, body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	hc.RLock()
	if hc.header != nil {
		req.Header = hc.header.Clone()
	}
	hc.RUnlock()
	if req.Header.Get(HeaderContentType) == "" && body != nil {
		req.Header.Set(HeaderContentType, HeaderContentTypeJSON)
	}

	resp, err := hc.hc.Do(req)
	if err != nil {
		if strings.Contains(err.Error(), ConnectionRefusedTag) {
			return nil, fmt.Errorf("%s client: connection to %s refused", hc.clientName, req.Host)
		}
		return nil, errors.WithStack(err)
	}

	r := hc.getRespReader(respReader)
	return r(resp, req, now)
}

func (hc *HTTPClient) getRespReader(respReader HTTPResponseReader) HTTPResponseReader {
	if respReader != nil {
		return respReader
	}
	return hc.defaultRespReader
}

func (hc *HTTPClient) readResponse(resp *http.Response, req *http.Request, startTime time.Time) ([]byte, error) {
	defer tools.ErrorWithPrintContext(resp.Body.Close, "close response body")
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var respStr string
	if len(bodyBytes) > 1024*100 {
		respStr = fmt.Sprintf("response size: %v", len(bodyBytes))
	} else {
		respStr = string(bodyBytes)
	}

	ok := config.GetInstance().GetBool(config.ClientsCommonRequestLog)
	if ok {
		log.Debugf("Got response from %v %v, status code = %d, body = %v took = %v", req.Method, req.URL, resp.StatusCode, respStr, time.Since(startTime))
	}

	if time.Since(startTime) > 800*time.Millisecond {
		log.Infof("TimeConsuming: from %v %v, status code = %d, response body = %v took = %v\n", req.Method, req.URL, resp.StatusCode, respStr, time.Since(startTime))
	}

	if resp.StatusCode/100 != 2 {
		errMsg := fmt.Errorf("HTTP request to %v %v failed with status code %d response:%v", req.Method, req.URL, resp.StatusCode, string(bodyBytes))
		if string(bodyBytes) == "" {
			return bodyBytes, errMsg
		}
		var result = new(ResponseMsg)
		if err = json.Unmarshal(bodyBytes, result); err != nil || result.Message == "" {
			return bodyBytes, errMsg
		}
		return bodyBytes, fmt.Errorf("%s", result.Message)
	}
	return bodyBytes, nil
}
