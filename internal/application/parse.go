package application

import (
	"slices"
	"strconv"
	"strings"

	"github.com/Dylan-B-D/vps-manager-bot/internal/domain"
)

var (
	freeColumns = []string{"total", "used", "free", "shared", "buff/cache", "available"}
	dfColumns   = []string{"Size", "Used", "Avail", "Use%"}
)

// ParseMemory reads the Mem: row of procps-ng "free -h". Any other layout,
// including older procps or localized headers, is rejected.
func ParseMemory(output string) (domain.MemoryUsage, error) {
	header, row, err := headerAndRow("free", output)
	if err != nil {
		return domain.MemoryUsage{}, err
	}
	if !slices.Equal(strings.Fields(header), freeColumns) {
		return domain.MemoryUsage{}, &domain.ParseError{Source: "free", Line: header, Reason: "unexpected header columns"}
	}

	fields := strings.Fields(row)
	if len(fields) != len(freeColumns)+1 || fields[0] != "Mem:" {
		return domain.MemoryUsage{}, &domain.ParseError{Source: "free", Line: row, Reason: "expected Mem: row with 6 values"}
	}

	return domain.MemoryUsage{
		Total:     fields[1],
		Used:      fields[2],
		Free:      fields[3],
		Shared:    fields[4],
		BuffCache: fields[5],
		Available: fields[6],
	}, nil
}

func ParseDisk(output string) (domain.DiskUsage, error) {
	header, row, err := headerAndRow("df", output)
	if err != nil {
		return domain.DiskUsage{}, err
	}
	columns := strings.Fields(header)
	if len(columns) < len(dfColumns)+1 || columns[0] != "Filesystem" || !slices.Equal(columns[1:len(dfColumns)+1], dfColumns) {
		return domain.DiskUsage{}, &domain.ParseError{Source: "df", Line: header, Reason: "unexpected header columns"}
	}

	fields := strings.Fields(row)
	if len(fields) < len(dfColumns)+1 {
		return domain.DiskUsage{}, &domain.ParseError{Source: "df", Line: row, Reason: "expected " + strconv.Itoa(len(dfColumns)+1) + " columns"}
	}
	if len(fields[4]) < 2 || !strings.HasSuffix(fields[4], "%") {
		return domain.DiskUsage{}, &domain.ParseError{Source: "df", Line: row, Reason: "use column is not a percentage"}
	}

	return domain.DiskUsage{
		Size:       fields[1],
		Used:       fields[2],
		Avail:      fields[3],
		UsePercent: fields[4],
	}, nil
}

// ParseCPUTimes reads the aggregate "cpu" line of /proc/stat.
func ParseCPUTimes(output string) (domain.CPUTimes, error) {
	line := strings.TrimSpace(firstLine(output))
	fields := strings.Fields(line)
	if len(fields) < 8 || fields[0] != "cpu" {
		return domain.CPUTimes{}, &domain.ParseError{Source: "/proc/stat", Line: line, Reason: "expected cpu line with at least 7 counters"}
	}

	var times domain.CPUTimes
	for i := range times {
		value, err := strconv.ParseUint(fields[i+1], 10, 64)
		if err != nil {
			return domain.CPUTimes{}, &domain.ParseError{Source: "/proc/stat", Line: line, Reason: "counter " + strconv.Itoa(i) + " is not an integer"}
		}
		times[i] = value
	}

	return times, nil
}

func ParseCPUModel(output string) (string, error) {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "Model name") {
			continue
		}
		_, value, ok := strings.Cut(line, ":")
		if !ok {
			return "", &domain.ParseError{Source: "lscpu", Line: line, Reason: "missing colon"}
		}
		return strings.TrimSpace(value), nil
	}

	return "", &domain.ParseError{Source: "lscpu", Reason: "no Model name line"}
}

func ParseCPUCores(output string) (int, error) {
	raw := strings.TrimSpace(output)
	cores, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &domain.ParseError{Source: "nproc", Line: raw, Reason: "not an integer"}
	}

	return cores, nil
}

// ParseProcesses reads a "ps -eo pid,%cpu,%mem,cmd" listing, header included.
func ParseProcesses(output string) ([]domain.ProcessSample, error) {
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) <= 1 {
		return nil, nil
	}

	samples := make([]domain.ProcessSample, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return nil, &domain.ParseError{Source: "ps", Line: line, Reason: "expected pid, cpu and mem columns"}
		}

		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, &domain.ParseError{Source: "ps", Line: line, Reason: "pid is not an integer"}
		}
		cpu, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, &domain.ParseError{Source: "ps", Line: line, Reason: "cpu is not a number"}
		}
		mem, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, &domain.ParseError{Source: "ps", Line: line, Reason: "mem is not a number"}
		}

		samples = append(samples, domain.ProcessSample{
			PID:        pid,
			CPUPercent: cpu,
			MemPercent: mem,
			Command:    strings.Join(fields[3:], " "),
		})
	}

	return samples, nil
}

func headerAndRow(source, output string) (string, string, error) {
	lines := strings.Split(output, "\n")
	if len(lines) < 2 {
		return "", "", &domain.ParseError{Source: source, Line: output, Reason: "expected a header and a data line"}
	}

	return lines[0], lines[1], nil
}

func firstLine(output string) string {
	line, _, _ := strings.Cut(output, "\n")
	return line
}
