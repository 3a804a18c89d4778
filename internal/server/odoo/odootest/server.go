// Package odootest provides an in-process fake of the Odoo XML-RPC API for
// tests. It understands authenticate, version and execute_kw; execute_kw
// replies come from handlers registered per model and method.
package odootest

import (
	"fmt"
	"html"
	"io"
	"net/http"
	"net/http/httptest"
	"path"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/kolo/xmlrpc"
)

var (
	methodNameRe  = regexp.MustCompile(`<methodName>([^<]*)</methodName>`)
	stringParamRe = regexp.MustCompile(`<param><value><string>([^<]*)</string></value></param>`)
)

// Call is one request received by the fake.
type Call struct {
	Endpoint string // "common" or "object"
	Method   string // XML-RPC method, e.g. execute_kw
	Model    string // execute_kw only
	Action   string // execute_kw only, e.g. create
	Body     string
}

// Member returns the scalar text of the first struct member called name in
// the request body, or "" when there is none.
func (c Call) Member(name string) string {
	re := regexp.MustCompile(`<member><name>` + regexp.QuoteMeta(name) +
		`</name><value><\w+>([^<]*)</\w+></value></member>`)
	m := re.FindStringSubmatch(c.Body)
	if m == nil {
		return ""
	}
	return html.UnescapeString(m[1])
}

// Handler produces the reply of an execute_kw call. Returning a *Fault
// sends an XML-RPC fault, a StatusError an HTTP error.
type Handler func(c Call) (any, error)

type Fault struct {
	Code    int
	Message string
}

func (f *Fault) Error() string { return fmt.Sprintf("fault %d: %s", f.Code, f.Message) }

// StatusError makes the fake answer with a bare HTTP status.
type StatusError int

func (e StatusError) Error() string { return http.StatusText(int(e)) }

type Server struct {
	srv *httptest.Server

	mu       sync.Mutex
	uid      any
	authErr  error
	version  any
	handlers map[string]Handler
	calls    []Call
}

// New starts a fake that authenticates everyone as uid 2.
func New(t testing.TB) *Server {
	s := &Server{
		uid: 2,
		version: map[string]any{
			"server_version":   "17.0",
			"protocol_version": 1,
		},
		handlers: map[string]Handler{},
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *Server) URL() string { return s.srv.URL }

// SetUID sets the authenticate reply; use false or 0 to reject logins.
func (s *Server) SetUID(v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uid = v
}

// FailAuth makes authenticate answer with err (a *Fault or StatusError).
func (s *Server) FailAuth(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authErr = err
}

func (s *Server) Handle(model, method string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[model+"."+method] = h
}

// Reply registers a handler that always returns v.
func (s *Server) Reply(model, method string, v any) {
	s.Handle(model, method, func(Call) (any, error) { return v, nil })
}

// Calls returns every request received so far, in order.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsTo returns the execute_kw calls for model and method.
func (s *Server) CallsTo(model, method string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Model == model && c.Action == method {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c := Call{Endpoint: path.Base(r.URL.Path), Body: string(body)}
	if m := methodNameRe.FindStringSubmatch(c.Body); m != nil {
		c.Method = m[1]
	}

	var value any
	s.mu.Lock()
	switch c.Method {
	case "authenticate":
		value, err = s.uid, s.authErr
	case "version":
		value = s.version
	case "execute_kw":
		strs := stringParamRe.FindAllStringSubmatch(c.Body, -1)
		if len(strs) >= 4 {
			c.Model, c.Action = strs[2][1], strs[3][1]
		}
		h, ok := s.handlers[c.Model+"."+c.Action]
		if !ok {
			err = &Fault{Code: 2, Message: fmt.Sprintf("no handler for %s.%s", c.Model, c.Action)}
			break
		}
		s.mu.Unlock()
		value, err = h(c)
		s.mu.Lock()
	default:
		err = &Fault{Code: 1, Message: "unknown method " + c.Method}
	}
	s.calls = append(s.calls, c)
	s.mu.Unlock()

	if status, ok := err.(StatusError); ok {
		http.Error(w, status.Error(), int(status))
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	if f, ok := err.(*Fault); ok {
		writeFault(w, f)
		return
	}
	if err != nil {
		writeFault(w, &Fault{Code: 1, Message: err.Error()})
		return
	}
	writeValue(w, value)
}

func writeValue(w http.ResponseWriter, v any) {
	if v == nil {
		v = false
	}
	b, err := xmlrpc.EncodeMethodCall("reply", v)
	if err != nil {
		writeFault(w, &Fault{Code: 1, Message: err.Error()})
		return
	}
	out := methodNameRe.ReplaceAllString(string(b), "")
	out = strings.ReplaceAll(out, "methodCall", "methodResponse")
	_, _ = io.WriteString(w, out)
}

func writeFault(w http.ResponseWriter, f *Fault) {
	_, _ = fmt.Fprintf(w, `<?xml version="1.0"?><methodResponse><fault><value><struct>`+
		`<member><name>faultCode</name><value><int>%d</int></value></member>`+
		`<member><name>faultString</name><value><string>%s</string></value></member>`+
		`</struct></value></fault></methodResponse>`, f.Code, html.EscapeString(f.Message))
}
