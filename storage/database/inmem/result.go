package inmemdb

import (
	"github.com/trezcool/studenthub/core/result"
)

type resultRepository struct {
	db *resultTable
}

var _ result.Repository = (*resultRepository)(nil) // interface compliance check

func NewResultRepository(db *DB) result.Repository {
	return &resultRepository{db: db.result}
}

func (repo *resultRepository) AppendResult(e result.Entry) (result.Entry, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.rows = append(repo.db.rows, e)
	return e, nil
}

func (repo *resultRepository) QueryAllResults() ([]result.Entry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	entries := make([]result.Entry, len(repo.db.rows))
	copy(entries, repo.db.rows)
	return entries, nil
}

func (repo *resultRepository) FilterResults(filter result.QueryFilter) ([]result.Entry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	entries := make([]result.Entry, 0)
	for _, e := range repo.db.rows {
		if filter.StudentID == "" || e.StudentID == filter.StudentID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (repo *resultRepository) RecentResults(n int) ([]result.Entry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if n > len(repo.db.rows) {
		n = len(repo.db.rows)
	}
	if n < 0 {
		n = 0
	}
	entries := make([]result.Entry, 0, n)
	for i := len(repo.db.rows) - 1; i >= len(repo.db.rows)-n; i-- {
		entries = append(entries, repo.db.rows[i])
	}
	return entries, nil
}
