package middleware

import (
	"bytes"
	"io"
	"time"

	"event_assistant/config"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	RequestIDHeader    = "X-Request-ID"
	RequestIDInLogName = "request_id"
)

// Logger logs method, latency, client ip and path per request. The request
// body is included only when app.log.request is enabled; bodies may carry
// user messages.
func Logger(ctx *gin.Context) {
	start := time.Now().UTC()
	path := ctx.Request.URL.Path

	request := ""
	if config.GetInstance().GetBool(config.ApplicationLogRequest) && ctx.Request.Body != nil {
		bodyBytes, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			logrus.Errorf("read body bytes err:%v", err)
			return
		}
		request = string(bodyBytes)
		ctx.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	}

	ip := ctx.ClientIP()

	ctx.Next()

	latency := time.Now().UTC().Sub(start)
	entry := logrus.NewEntry(logrus.StandardLogger())
	if requestID, ok := ctx.Get(RequestIDHeader); ok {
		entry = entry.WithField(RequestIDInLogName, requestID)
	}
	if request != "" {
		entry.Infof("%s| %s| %s| %s |request: %s", ctx.Request.Method, latency, ip, path, request)
	} else {
		entry.Infof("%s| %s| %s| %s", ctx.Request.Method, latency, ip, path)
	}
}
