package models

import (
	"database/sql"
	"time"
)

type JobStatus string

const (
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusSuccess    JobStatus = "SUCCESS"
	JobStatusFailure    JobStatus = "FAILURE"
)

type JobLog struct {
	ID          int64        `db:"id" json:"id" yaml:"id"`
	Name        string       `db:"name" json:"name" yaml:"name"`
	Description string       `db:"description" json:"description" yaml:"description"`
	Status      JobStatus    `db:"status" json:"status" yaml:"status"`
	EntityKind  EntityKind   `db:"entity_kind" json:"entityKind" yaml:"entityKind"`
	Start       time.Time    `db:"start_time" json:"start" yaml:"start"`
	End         sql.NullTime `db:"end_time" json:"-" yaml:"-"`
}
