package calendar

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/username/working-hours/pkg/dateutil"
	"go.uber.org/zap"
)

// FileProvider implements Provider using a local text file
type FileProvider struct {
	filePath string
	logger   *zap.Logger
	loaded   bool
	data     map[int][]fileHoliday // key: year
}

type fileHoliday struct {
	country string // empty matches every country
	holiday Holiday
}

// NewFileProvider creates a new FileProvider instance
func NewFileProvider(filePath string, logger *zap.Logger) *FileProvider {
	return &FileProvider{
		filePath: filePath,
		logger:   logger,
		data:     make(map[int][]fileHoliday),
	}
}

// Load loads holiday data from file
func (fp *FileProvider) Load() error {
	file, err := os.Open(fp.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holidays file: %w", err)
	}
	defer file.Close()

	data := make(map[int][]fileHoliday)
	scanner := bufio.NewScanner(file)
	lineNo := 0
	count := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Format: [CC] YYYY-MM-DD type [name]
		// Example: PL 2024-12-24 public Wigilia
		entry, err := parseFileLine(line)
		if err != nil {
			fp.logger.Warn("Invalid line in holidays file",
				zap.Int("line", lineNo),
				zap.String("text", line),
				zap.Error(err))
			continue
		}

		year := entry.holiday.Date.Year()
		data[year] = append(data[year], entry)
		count++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holidays file: %w", err)
	}

	fp.data = data
	fp.loaded = true

	fp.logger.Info("Holidays file loaded",
		zap.String("file", fp.filePath),
		zap.Int("holidays", count),
		zap.Int("years", len(data)))

	return nil
}

func parseFileLine(line string) (fileHoliday, error) {
	fields := strings.Fields(line)

	var country string
	if len(fields) > 0 && isCountryCode(fields[0]) {
		country = strings.ToUpper(fields[0])
		fields = fields[1:]
	}

	if len(fields) < 2 {
		return fileHoliday{}, fmt.Errorf("expected date and type, got %d field(s)", len(fields))
	}

	date, err := dateutil.ParseDate(fields[0])
	if err != nil {
		return fileHoliday{}, err
	}

	holidayType, err := ParseHolidayType(fields[1])
	if err != nil {
		return fileHoliday{}, err
	}

	return fileHoliday{
		country: country,
		holiday: Holiday{
			Date: date,
			Name: strings.Join(fields[2:], " "),
			Type: holidayType,
		},
	}, nil
}

func isCountryCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// Holidays returns the holidays listed for country (or for every country) in year
func (fp *FileProvider) Holidays(country string, year int) ([]Holiday, error) {
	if !fp.loaded {
		return nil, fmt.Errorf("holidays file not loaded: %s", fp.filePath)
	}

	country = strings.ToUpper(country)
	var holidays []Holiday
	for _, entry := range fp.data[year] {
		if entry.country == "" || entry.country == country {
			holidays = append(holidays, entry.holiday)
		}
	}

	return holidays, nil
}
