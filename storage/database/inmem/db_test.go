package inmemdb

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studenthub/core/result"
	"github.com/trezcool/studenthub/core/student"
)

func open(t *testing.T) *DB {
	db, err := Open()
	require.NoError(t, err)
	return db
}

func TestSeed(t *testing.T) {
	db := open(t)
	require.NoError(t, Seed(db))

	students, err := NewStudentRepository(db).QueryAllStudents()
	require.NoError(t, err)
	ids := make([]string, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"ST001", "ST002", "ST003", "ST004"}, ids)

	entries, err := NewResultRepository(db).QueryAllResults()
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func Test_studentRepository_CreateStudent(t *testing.T) {
	db := open(t)
	require.NoError(t, Seed(db))
	repo := NewStudentRepository(db)

	st, err := repo.CreateStudent(student.Student{Name: "Manvi Singh", Email: "manvi@email.com", Class: student.Class11, Password: "manvi123"})
	require.NoError(t, err)
	assert.Equal(t, "ST005", st.ID)

	got, err := repo.GetStudentByID("ST005")
	require.NoError(t, err)
	assert.Equal(t, st, got)

	_, err = repo.GetStudentByID("ST999")
	assert.ErrorIs(t, err, student.ErrNotFound)
}

func Test_studentRepository_CreateStudent_empty(t *testing.T) {
	repo := NewStudentRepository(open(t))

	st, err := repo.CreateStudent(student.Student{Name: "First"})
	require.NoError(t, err)
	assert.Equal(t, "ST001", st.ID)
}

func Test_studentRepository_CreateStudent_concurrent(t *testing.T) {
	repo := NewStudentRepository(open(t))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.CreateStudent(student.Student{Name: "S"})
		}()
	}
	wg.Wait()

	students, err := repo.QueryAllStudents()
	require.NoError(t, err)
	seen := make(map[string]bool, len(students))
	for _, s := range students {
		assert.Falsef(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
	}
	assert.Len(t, seen, 50)
}

func Test_studentRepository_FilterStudents(t *testing.T) {
	db := open(t)
	require.NoError(t, Seed(db))
	repo := NewStudentRepository(db)

	names := func(students []student.Student) []string {
		out := make([]string, 0, len(students))
		for _, s := range students {
			out = append(out, s.Name)
		}
		return out
	}

	tests := []struct {
		name   string
		filter student.QueryFilter
		want   []string
	}{
		{name: "empty", want: []string{"Murari Kumar", "Pradeep Singh", "Pushpa Raj", "Satyam Kumar"}},
		{name: "by name, ignoring case", filter: student.QueryFilter{Search: "murari"}, want: []string{"Murari Kumar"}},
		{name: "by id", filter: student.QueryFilter{Search: "st00"}, want: []string{"Murari Kumar", "Pradeep Singh", "Pushpa Raj", "Satyam Kumar"}},
		{name: "by email", filter: student.QueryFilter{Search: "PUSHPA@"}, want: []string{"Pushpa Raj"}},
		{name: "shared substring keeps order", filter: student.QueryFilter{Search: "kumar"}, want: []string{"Murari Kumar", "Satyam Kumar"}},
		{name: "by class", filter: student.QueryFilter{Class: student.Class12}, want: []string{"Murari Kumar", "Pushpa Raj"}},
		{name: "search & class", filter: student.QueryFilter{Search: "kumar", Class: student.Class10}, want: []string{"Satyam Kumar"}},
		{name: "no match", filter: student.QueryFilter{Search: "lol"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FilterStudents(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func Test_resultRepository(t *testing.T) {
	repo := NewResultRepository(open(t))

	for _, e := range []result.Entry{
		{StudentID: "ST001", Subject: "Math", Score: 95},
		{StudentID: "ST002", Subject: "Chem", Score: 82},
		{StudentID: "ST001", Subject: "Phys", Score: 88},
		{StudentID: "ST001", Subject: "Math", Score: 70}, // duplicates are kept
	} {
		_, err := repo.AppendResult(e)
		require.NoError(t, err)
	}

	t.Run("filter keeps insertion order", func(t *testing.T) {
		got, err := repo.FilterResults(result.QueryFilter{StudentID: "ST001"})
		require.NoError(t, err)
		assert.Equal(t, []result.Entry{
			{StudentID: "ST001", Subject: "Math", Score: 95},
			{StudentID: "ST001", Subject: "Phys", Score: 88},
			{StudentID: "ST001", Subject: "Math", Score: 70},
		}, got)
	})

	t.Run("filter unknown student", func(t *testing.T) {
		got, err := repo.FilterResults(result.QueryFilter{StudentID: "ST404"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("recent is most recent first", func(t *testing.T) {
		got, err := repo.RecentResults(2)
		require.NoError(t, err)
		assert.Equal(t, []result.Entry{
			{StudentID: "ST001", Subject: "Math", Score: 70},
			{StudentID: "ST001", Subject: "Phys", Score: 88},
		}, got)
	})

	t.Run("recent beyond size", func(t *testing.T) {
		got, err := repo.RecentResults(10)
		require.NoError(t, err)
		assert.Len(t, got, 4)
		assert.Equal(t, 95, got[3].Score)
	})
}

func TestDB_Reset(t *testing.T) {
	db := open(t)
	require.NoError(t, Seed(db))
	db.Reset()

	n, err := NewStudentRepository(db).CountStudents()
	require.NoError(t, err)
	assert.Zero(t, n)

	entries, err := NewResultRepository(db).QueryAllResults()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
