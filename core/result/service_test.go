package result_test

import (
	"net/mail"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studenthub/core"
	"github.com/trezcool/studenthub/core/result"
	"github.com/trezcool/studenthub/core/student"
	"github.com/trezcool/studenthub/services/email"
	"github.com/trezcool/studenthub/storage/database/inmem"
	"github.com/trezcool/studenthub/tests"
)

func setup(t *testing.T, mailSvc core.EmailService) (*result.Service, result.Repository) {
	db := testutil.PrepareDB(t)
	stRepo := inmemdb.NewStudentRepository(db)
	resRepo := inmemdb.NewResultRepository(db)
	testutil.CreateStudent(t, stRepo, "Murari Kumar", "murari@email.com", student.Class12, "murari123")
	testutil.CreateStudent(t, stRepo, "Pradeep Singh", "", student.Class11, "pradeep123")

	return result.NewService(resRepo, student.NewService(stRepo), mailSvc), resRepo
}

func ledgerSize(t *testing.T, repo result.Repository) int {
	entries, err := repo.QueryAllResults()
	require.NoError(t, err)
	return len(entries)
}

func score(n int) *int { return &n }

func TestService_Add(t *testing.T) {
	svc, repo := setup(t, nil)

	tests := []struct {
		name      string
		data      result.NewEntry
		wantErr   error
		wantField string
	}{
		{name: "unknown student", data: result.NewEntry{StudentID: "ST404", Subject: "Math", Score: score(50)}, wantErr: result.ErrStudentNotFound, wantField: "student_id"},
		{name: "score below range", data: result.NewEntry{StudentID: "ST001", Subject: "Math", Score: score(-1)}, wantErr: result.ErrScoreOutOfRange, wantField: "score"},
		{name: "score above range", data: result.NewEntry{StudentID: "ST001", Subject: "Math", Score: score(101)}, wantErr: result.ErrScoreOutOfRange, wantField: "score"},
		{name: "unknown student is checked first", data: result.NewEntry{StudentID: "ST404", Subject: "Math", Score: score(101)}, wantErr: result.ErrStudentNotFound, wantField: "student_id"},
		{name: "missing score", data: result.NewEntry{StudentID: "ST001", Subject: "Math"}, wantErr: result.ErrScoreRequired, wantField: "score"},
		{name: "lower bound", data: result.NewEntry{StudentID: "ST001", Subject: "Art", Score: score(0)}},
		{name: "upper bound", data: result.NewEntry{StudentID: "ST001", Subject: "Music", Score: score(100)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := ledgerSize(t, repo)
			e, err := svc.Add(tt.data)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				var vErr *core.ValidationError
				if assert.ErrorAs(t, err, &vErr) && assert.Len(t, vErr.Fields, 1) {
					assert.Equal(t, tt.wantField, vErr.Fields[0].Field)
				}
				assert.Equal(t, before, ledgerSize(t, repo))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, *tt.data.Score, e.Score)
			assert.Equal(t, before+1, ledgerSize(t, repo))
		})
	}
}

func TestService_AllForStudent(t *testing.T) {
	svc, _ := setup(t, nil)

	for _, ne := range []result.NewEntry{
		{StudentID: "ST001", Subject: "Math", Score: score(95)},
		{StudentID: "ST002", Subject: "Chemistry", Score: score(82)},
		{StudentID: "ST001", Subject: "Phys", Score: score(88)},
	} {
		_, err := svc.Add(ne)
		require.NoError(t, err)
	}

	entries, err := svc.AllForStudent("ST001")
	require.NoError(t, err)
	assert.Equal(t, []result.Entry{
		{StudentID: "ST001", Subject: "Math", Score: 95},
		{StudentID: "ST001", Subject: "Phys", Score: 88},
	}, entries)

	sum, err := svc.SummaryFor("ST001")
	require.NoError(t, err)
	assert.Equal(t, 92, sum.Average)
	assert.Equal(t, 95, sum.Highest)

	overall, err := svc.Overall()
	require.NoError(t, err)
	assert.Equal(t, 3, overall.Count)
	assert.Equal(t, 88, overall.Average)

	all, err := svc.Filter(result.QueryFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestService_Recent(t *testing.T) {
	svc, repo := setup(t, nil)
	for i, subj := range []string{"A", "B", "C", "D", "E", "F"} {
		testutil.AddResult(t, repo, "ST001", subj, 50+i)
	}

	recent, err := svc.Recent(5)
	require.NoError(t, err)
	subjects := make([]string, 0, len(recent))
	for _, e := range recent {
		subjects = append(subjects, e.Subject)
	}
	assert.Equal(t, []string{"F", "E", "D", "C", "B"}, subjects)

	none, err := svc.Recent(0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestService_Add_notifies(t *testing.T) {
	emailsvc.ResetSentMessages()
	conf := &core.Config{AppName: "StudentHub", DefaultFromEmail: mail.Address{Name: "StudentHub", Address: "noreply@localhost"}}
	svc, _ := setup(t, emailsvc.NewConsoleServiceMock(conf))

	_, err := svc.Add(result.NewEntry{StudentID: "ST001", Subject: "Mathematics", Score: score(95)})
	require.NoError(t, err)
	// ST002 has no email
	_, err = svc.Add(result.NewEntry{StudentID: "ST002", Subject: "Chemistry", Score: score(40)})
	require.NoError(t, err)

	sent := emailsvc.SentMessages()
	require.Len(t, sent, 1)
	msg := sent[0]
	assert.Equal(t, "murari@email.com", msg.To[0].Address)
	assert.Equal(t, "New result: Mathematics", msg.Subject)
	assert.Contains(t, msg.TextContent, "Mathematics: 95% (grade A, passed)")
	assert.Contains(t, msg.HTMLContent, "<strong>ST001</strong>")
}

func TestNewEntry_Validate(t *testing.T) {
	validate, translator := testutil.NewValidator()

	tests := []struct {
		name    string
		data    result.NewEntry
		wantErr map[string]string
	}{
		{name: "valid", data: result.NewEntry{StudentID: " ST001 ", Subject: " Art ", Score: score(70)}},
		{name: "zero score is a score", data: result.NewEntry{StudentID: "ST001", Subject: "Art", Score: score(0)}},
		{
			name:    "missing fields",
			data:    result.NewEntry{},
			wantErr: map[string]string{"student_id": "this field is required", "subject": "this field is required", "score": "this field is required"},
		},
		{
			name:    "missing score",
			data:    result.NewEntry{StudentID: "ST001", Subject: "Art"},
			wantErr: map[string]string{"score": "this field is required"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.data
			err := data.Validate(validate)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				assert.Equal(t, core.CleanString(tt.data.Subject), data.Subject)
				return
			}
			var vErrs validator.ValidationErrors
			require.ErrorAs(t, err, &vErrs)
			assert.Equal(t, tt.wantErr, core.TranslateErrors(vErrs, translator))
		})
	}
}
