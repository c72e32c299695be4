package h1

// Canned responses for statuses the proxy produces often. These are
// plain byte literals, bypassing ResponseBuilder entirely: they exist
// as an allocation-free fast path for the hot rejection paths.
var (
	Canned200 = []byte("HTTP/1.1 200 OK\r\n\r\n")
	Canned400 = []byte("HTTP/1.1 400 Bad Request\r\n\r\n")
	Canned401 = []byte("HTTP/1.1 401 Unauthorized\r\n\r\nUnauthorized\r\n")
	Canned403 = []byte("HTTP/1.1 403 Forbidden\r\n\r\n")
	Canned404 = []byte("HTTP/1.1 404 Not Found\r\n\r\n")
	Canned407 = []byte("HTTP/1.1 407 Proxy Authentication Required\r\nProxy-Authenticate: Basic realm=\"Proxy-Login\"\r\n\r\n")
	Canned500 = []byte("HTTP/1.1 500 Internal Server Error\r\n\r\n")
	Canned502 = []byte("HTTP/1.1 502 Bad Gateway\r\n\r\n")
	Canned503 = []byte("HTTP/1.1 503 Service Unavailable\r\n\r\n")
)
