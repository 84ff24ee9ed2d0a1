package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableCheckError
	DBTableExistsCheckError
	DBRowCountError
	DBTransactionError
	DBSequenceError

	// Schema errors
	SchemaDropError
	SchemaCreateError

	// Seed errors
	SeedReadError
	SeedInsertError

	// Study errors
	StudyQueryError
	StudyUpdateError
	StudyDeleteError
	StudyNotFoundError

	// Report errors
	ReportEncodeError

	// Optimize errors
	OptimizeIntegrityError
	OptimizeForeignKeyError
	OptimizeVacuumError
)
