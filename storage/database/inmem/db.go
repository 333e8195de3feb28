package inmemdb

import (
	"sync"

	"github.com/trezcool/studenthub/core/result"
	"github.com/trezcool/studenthub/core/student"
)

type (
	// DB holds every table of a running instance. Tables keep insertion order.
	DB struct {
		student *studentTable
		result  *resultTable
	}

	studentTable struct {
		sync.RWMutex
		rows  []student.Student
		index map[string]int // {id: row}
	}

	resultTable struct {
		sync.RWMutex
		rows []result.Entry
	}
)

func Open() (*DB, error) {
	db := &DB{
		student: &studentTable{index: make(map[string]int)},
		result:  &resultTable{},
	}
	return db, nil
}

// Reset empties every table.
func (db *DB) Reset() {
	db.student.Lock()
	db.student.rows = nil
	db.student.index = make(map[string]int)
	db.student.Unlock()

	db.result.Lock()
	db.result.rows = nil
	db.result.Unlock()
}
