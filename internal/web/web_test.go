package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cz4r/internal/dto"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{
		"home.html", "login.html", "changepw.html", "joblist.html", "jobedit.html",
		"checkinout.html", "workeredit.html", "workerdata.html", "restore.html",
		"admin.html", "error.html", "404.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestJobListRenders(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	page := &dto.JobListPage{
		Jobs: []dto.JobListItem{
			{JobID: 4, SiteName: "Depot", Date: "March 25, 2024", Status: dto.StatusOrphan},
			{JobID: 1, WorkerID: 2, WorkerName: "alice", SiteName: "<b>Mill</b>", Status: dto.StatusStarted},
		},
		Order:    dto.OrderLatest,
		Assigned: true,
	}
	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "joblist.html", map[string]interface{}{
		"title": "Jobs", "logged_in": true, "admin": true, "page": page,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "No workers assigned")
	assert.Contains(t, out, "/checkinout?id=1&worker=2")
	assert.Contains(t, out, "&lt;b&gt;Mill&lt;/b&gt;")
	assert.True(t, strings.Contains(out, `href="/jobedit?id=4"`))
}

func TestErrorPageRenders(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "error.html", map[string]interface{}{
		"title": "CZ4R Error", "status": 403, "cause": "Only administrators can do that",
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Only administrators can do that")
	assert.Contains(t, buf.String(), "403")
}
