// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Root serves the static API documentation page.
func (s *Server) Root(c echo.Context) error {
	return c.HTML(http.StatusOK, docsPage)
}

const docsPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>tickd API</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif; max-width: 900px; margin: 40px auto; padding: 0 20px; line-height: 1.6; color: #333; }
        h1 { border-bottom: 2px solid #3498db; padding-bottom: 10px; }
        code { background-color: #f4f4f4; padding: 2px 6px; border-radius: 3px; }
        pre { background-color: #f4f4f4; padding: 15px; border-radius: 5px; overflow-x: auto; border-left: 3px solid #3498db; }
        pre code { background-color: transparent; padding: 0; }
        .endpoint { background-color: #e8f4f8; padding: 15px; border-radius: 5px; margin: 20px 0; }
    </style>
</head>
<body>
    <h1>tickd</h1>
    <p>Time API with timezone conversion and clock quality reporting.</p>

    <div class="endpoint">
        <h2>GET /times</h2>
        <ul>
            <li><code>tz</code> (optional, repeatable): IANA timezone names, also accepted comma-separated. Default: <code>UTC</code></li>
            <li><code>include_quality</code> (optional): include chrony time quality metrics. Default: <code>false</code></li>
        </ul>
        <pre><code>{
  "unix": 1234567890,
  "zones": {
    "UTC": { "local": "2009-02-13T23:31:30", "offset": 0 },
    "America/Denver": { "local": "2009-02-13T16:31:30", "offset": -25200 }
  }
}</code></pre>
        <pre><code>curl "http://localhost:8463/times?tz=UTC,America/New_York&amp;tz=Asia/Tokyo"</code></pre>
        <p>Unix timestamp is integer seconds. Local time is ISO-8601 without a timezone suffix. Offset is seconds east of UTC.</p>
    </div>

    <div class="endpoint">
        <h2>GET /health</h2>
        <p>System clock and chrony checks. <code>healthy</code>, <code>degraded</code>, or <code>unhealthy</code> (HTTP 503).</p>
    </div>

    <div class="endpoint">
        <h2>GET /ready</h2>
        <p>Returns 200 when the server accepts requests.</p>
    </div>

    <h2>Errors</h2>
    <pre><code>{ "detail": "Unrecognized time zone 'Invalid/Zone'" }</code></pre>
</body>
</html>
`
