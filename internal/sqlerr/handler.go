package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/hr-manager/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// tablePrefix marks the table name inside not-found errors built by NoRows.
const tablePrefix = "table:"

// NoRows reports that no row of table matched. HandleError turns it into a 404
// naming the entity.
func NoRows(table string) error {
	return fmt.Errorf("%s%s: %w", tablePrefix, table, pgx.ErrNoRows)
}

// ErrCode reports the Code of err, or Other when err is not an *Error.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	var raw *pgconn.PgError
	if errors.As(err, &raw) {
		return MapCode(raw.Code)
	}
	return Other
}

// generateErrorCode builds codes like SPECIALIST_ALREADY_EXISTS.
func generateErrorCode(entity string, errType Code) string {
	if entity == "" {
		entity = "record"
	}
	domain := strings.ToUpper(strings.ReplaceAll(entity, " ", "_"))

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidInput:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func formatUserFriendlyMessage(sqlErr *Error, entityName string) string {
	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)
	case UniqueViolation:
		return fmt.Sprintf("A %s with this identifier already exists", entityName)
	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)
	case CheckViolation:
		if fieldName := humanizeText(sqlErr.ColumnName); fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"
	case InvalidInput:
		return "One or more values have an invalid format"
	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers the entity a table or *_id column refers to.
//
//	"skill_id"         -> "skill"
//	"specialists"      -> "specialist"
//	"applicant_skills" -> "applicant skill"
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		return strings.ReplaceAll(strings.TrimSuffix(strings.ToLower(columnName), "_id"), "_", " ")
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return strings.ReplaceAll(entity, "_", " ")
	}

	return "record"
}

func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

var (
	uniqueKeyRe  = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)
	primaryKeyRe = regexp.MustCompile(`_pkey$`)
)

// extractColumnForUniqueViolation infers the column from a constraint name.
//
//	unique_<table>_<column>  -> column
//	<table>_<column>_key     -> column
//	<table>_pkey             -> "" (the primary key, reported as identifier)
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" || primaryKeyRe.MatchString(constraintName) {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueKeyRe.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// extractColumnForForeignKeyViolation reads the column out of the default
// Postgres constraint name "<table>_<column>_fkey".
func extractColumnForForeignKeyViolation(tableName, constraintName string) string {
	name, ok := strings.CutSuffix(constraintName, "_fkey")
	if !ok {
		return ""
	}
	if tableName != "" {
		if column, ok := strings.CutPrefix(name, tableName+"_"); ok {
			return column
		}
	}
	return ""
}

// publicFieldName maps a column to the JSON name clients send:
// "specialist_id" -> "specialistID". Other columns keep their name.
func publicFieldName(column string) string {
	column = strings.ToLower(column)
	prefix, ok := strings.CutSuffix(column, "_id")
	if !ok || prefix == "" {
		return column
	}

	parts := strings.Split(prefix, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "") + "ID"
}

// HandleError converts a database error into an *errs.HTTPError.
//
//   - *errs.HTTPError is returned unchanged
//   - constraint violations and bad input become 400s
//   - no rows becomes a 404
//   - anything else is a 500 that still unwraps to err for logging
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		column := sqlErr.ColumnName
		if sqlErr.Code == ForeignKeyViolation && column == "" {
			column = extractColumnForForeignKeyViolation(sqlErr.TableName, sqlErr.ConstraintName)
		}

		var entity string
		if sqlErr.Code == ForeignKeyViolation {
			entity = getEntityName(sqlErr.TableName, column)
		} else {
			entity = getEntityName(sqlErr.TableName, "")
		}

		errorCode := generateErrorCode(entity, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr, entity)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			var fieldErrors []errs.FieldError
			if column != "" {
				fieldErrors = []errs.FieldError{{Field: publicFieldName(column), Error: "does not exist"}}
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil).WithCause(err)

		case UniqueViolation:
			if columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName); columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil).WithCause(err)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: publicFieldName(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil).WithCause(err)

		case CheckViolation, InvalidInput:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil).WithCause(err)

		default:
			return errs.NewInternalServerError().WithCause(err)
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		if _, rest, ok := strings.Cut(err.Error(), tablePrefix); ok {
			table, _, _ := strings.Cut(rest, ":")
			entityName := humanizeText(getEntityName(table, ""))
			return errs.NewNotFoundError(fmt.Sprintf("%s not found", entityName), true, nil).WithCause(err)
		}
		return errs.NewNotFoundError("Resource not found", false, nil).WithCause(err)
	}

	return errs.NewInternalServerError().WithCause(err)
}
