package emailsvc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"sync"
	"testing"

	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studenthub/core"
	"github.com/trezcool/studenthub/core/result"
	"github.com/trezcool/studenthub/tests"
)

// sendgridServer fakes the v3 mail endpoint. Mail with the subject "[StudentHub] rejected" gets a 400.
func sendgridServer(t *testing.T) (*httptest.Server, func() []sgmail.SGMailV3) {
	var (
		mu       sync.Mutex
		received []sgmail.SGMailV3
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != sendgridEndpoint || r.Header.Get("Authorization") != "Bearer sg-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var m sgmail.SGMailV3
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		mu.Lock()
		received = append(received, m)
		mu.Unlock()

		if m.Personalizations[0].Subject == "[StudentHub] rejected" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"errors":[{"message":"invalid"}]}`))
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(srv.Close)

	return srv, func() []sgmail.SGMailV3 {
		mu.Lock()
		defer mu.Unlock()
		return append([]sgmail.SGMailV3(nil), received...)
	}
}

func Test_sendgridService_SendMessages(t *testing.T) {
	srv, received := sendgridServer(t)
	logger := new(testutil.Logger)
	conf := *testConf
	conf.SendgridApiKey = "sg-key"
	svc := newSendgridService(&conf, logger, srv.URL)

	murari := []mail.Address{{Name: "Murari Kumar", Address: "murari@email.com"}}
	e := result.Entry{StudentID: "ST001", Subject: "Physics", Score: 88}
	svc.SendMessages(
		&core.EmailMessage{
			To:           murari,
			Subject:      "New result: Physics",
			TemplateName: "result_published",
			TemplateData: result.Notification{
				StudentName: "Murari Kumar",
				RollNumber:  e.StudentID,
				Subject:     e.Subject,
				Score:       e.Score,
				Grade:       e.Grade(),
				Passed:      e.Passed(),
			},
		},
		&core.EmailMessage{Subject: "no recipients", BodyStr: "dropped"},
		&core.EmailMessage{To: murari, Subject: "bad template", TemplateName: "lol"},
		&core.EmailMessage{To: murari, Subject: "rejected", BodyStr: "nope"},
	)
	svc.Wait()

	assert.ElementsMatch(t, []string{
		`error: sending email "bad template": rendering: email template "lol" not found`,
		`error: sending email "rejected": sendgrid status 400: {"errors":[{"message":"invalid"}]}`,
	}, logger.Messages())

	msgs := received()
	require.Len(t, msgs, 2, "only the rendered messages with recipients reach sendgrid")
	var published *sgmail.SGMailV3
	for i := range msgs {
		if msgs[i].Personalizations[0].Subject == "[StudentHub] New result: Physics" {
			published = &msgs[i]
		}
	}
	require.NotNil(t, published)
	assert.Equal(t, "noreply@localhost", published.From.Address)
	assert.Equal(t, "murari@email.com", published.Personalizations[0].To[0].Address)
	require.Len(t, published.Content, 2)
	assert.Equal(t, "text/plain", published.Content[0].Type)
	assert.Contains(t, published.Content[0].Value, "Physics: 88% (grade B, passed)")
	assert.Equal(t, "text/html", published.Content[1].Type)
	assert.Contains(t, published.Content[1].Value, "<strong>ST001</strong>")
}

func Test_sendgridService_prepare(t *testing.T) {
	svc := newSendgridService(testConf, nil, sendgridHost)

	m := svc.prepare(core.EmailMessage{
		To:          []mail.Address{{Name: "Murari Kumar", Address: "murari@email.com"}},
		Bcc:         []mail.Address{{Address: "office@email.com"}},
		Subject:     "New result: Physics",
		TextContent: "88",
	})
	require.Len(t, m.Personalizations, 1)
	p := m.Personalizations[0]
	assert.Equal(t, "[StudentHub] New result: Physics", p.Subject)
	assert.Equal(t, "murari@email.com", p.To[0].Address)
	assert.Empty(t, p.CC)
	require.Len(t, p.BCC, 1)
	assert.Equal(t, "office@email.com", p.BCC[0].Address)
	require.Len(t, m.Content, 1)
	assert.Equal(t, "text/plain", m.Content[0].Type)
	assert.Equal(t, "noreply@localhost", m.From.Address)
}
