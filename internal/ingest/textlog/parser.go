package textlog

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/claude/liftlog/internal/models"
)

var (
	// dateHeaderRe matches: [2024-1-10] or [2024-01-10 leg day]
	// Trailing free text inside the brackets is ignored.
	dateHeaderRe = regexp.MustCompile(`^\s*\[(\d{4}-\d{1,2}-\d{1,2}).*\]\s*$`)

	// setLineRe matches: 100*5 or 100 * 5
	setLineRe = regexp.MustCompile(`^(\d+)\s*\*\s*(\d+)`)
)

// Parser scans the plain-text workout log format:
//
//	[2024-1-10]
//	bench
//	100*5
//	80*8
//
// Date headers open a day block, a recognized exercise line opens an
// exercise block, and weight*reps lines become records numbered 1..N
// within the current block. Anything malformed is a logged warning, never
// a parse failure.
type Parser struct {
	log *slog.Logger
}

// NewParser creates a Parser that reports skipped lines to log.
func NewParser(log *slog.Logger) *Parser {
	return &Parser{log: log}
}

// Parse scans r line by line and returns the records it could extract, in
// file order. Problem lines are logged and skipped; a scanner error is
// logged and the records extracted so far are returned.
func (p *Parser) Parse(r io.Reader) []models.WorkoutRecord {
	scanner := bufio.NewScanner(r)

	var records []models.WorkoutRecord
	var currentDate *models.Date
	currentExercise := ""
	setNumber := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if m := dateHeaderRe.FindStringSubmatch(line); m != nil {
			// New day: exercise context and set numbering start over.
			currentExercise = ""
			setNumber = 0
			d, err := models.ParseDate(m[1])
			if err != nil {
				p.log.Warn("malformed date header, ignoring block until next header", "line", line)
				currentDate = nil
				continue
			}
			currentDate = &d
			continue
		}

		if m := setLineRe.FindStringSubmatch(line); m != nil {
			if currentDate == nil || currentExercise == "" {
				p.log.Warn("set line before date or exercise header, skipping", "line", line)
				continue
			}
			weight, _ := strconv.Atoi(m[1])
			reps, _ := strconv.Atoi(m[2])
			setNumber++
			records = append(records, models.NewWorkoutRecord(
				*currentDate, currentExercise, weight, reps, setNumber))
			continue
		}

		if currentDate == nil {
			p.log.Warn("line before any date header, skipping", "line", line)
			continue
		}

		// Anything else under an active date is a candidate exercise header.
		if canonical, ok := models.CanonicalExercise(line); ok && models.IsAllowedExercise(canonical) {
			currentExercise = canonical
			setNumber = 0
			continue
		}
		p.log.Warn("unrecognized exercise line, skipping", "line", line, "date", currentDate.String())
	}

	if err := scanner.Err(); err != nil {
		p.log.Error("scan failed, returning records extracted so far", "error", err)
	}

	return records
}

// ParseFile parses the log file at path. Open or read failures are logged
// and yield nil; callers must treat an empty result as "nothing imported".
func (p *Parser) ParseFile(path string) []models.WorkoutRecord {
	f, err := os.Open(path)
	if err != nil {
		p.log.Error("cannot open log file", "path", path, "error", err)
		return nil
	}
	defer f.Close()
	return p.Parse(f)
}
