// Package portal is a small JSON client for the document portal HTTP API.
//
// Every non-2xx response is returned as *APIError whose text is the
// server's own message, so the CLI can print it unchanged:
//
//	c := portal.New("http://localhost:3000", 30*time.Second)
//	token, err := c.Login(ctx, "admin", pw)
//	c.SetToken(token)
//	res, err := c.Upload(ctx, payload)
package portal
