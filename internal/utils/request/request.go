package request

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Request is the shared HTTP client for all external providers. Provider
// outages must not hang a scan, so a hard timeout applies on top of the
// retry budget.
var Request = resty.New().SetTransport(&http.Transport{
	Proxy: http.ProxyFromEnvironment,
}).SetRetryCount(3).SetTimeout(15 * time.Second)
