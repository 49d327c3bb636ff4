package views

import (
	"github.com/dmitrijs2005/storepulse/internal/client/client"
	"github.com/dmitrijs2005/storepulse/internal/client/session"
)

// get builds a GET for path, authorized when sess is present.
func get(sess *session.Session, path string) *client.Request {
	req := client.Get(path)
	if sess != nil {
		req = sess.Authorize(req)
	}
	return &req
}

// launch issues prepared requests once every member is already loading.
func launch(starts ...func()) {
	for _, start := range starts {
		start()
	}
}
