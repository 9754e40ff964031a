package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/cosmic/internal/constants"
	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
	"github.com/fivetwenty-io/cosmic/pkg/cosmicclient"
)

// CLIUserAgent identifies requests made by this tool.
const CLIUserAgent = "cosmic-cli/1.0"

// newClientFromConfig builds a client from the layered viper configuration
// (flags, COSMIC_* environment, config file).
func newClientFromConfig() (cosmic.Client, error) {
	bucket := strings.TrimSpace(viper.GetString("bucket"))
	if bucket == "" {
		return nil, constants.ErrBucketNotConfigured
	}

	config := &cosmic.Config{
		BucketSlug: bucket,
		ReadKey:    viper.GetString("read_key"),
		WriteKey:   viper.GetString("write_key"),
		BaseURL:    viper.GetString("base_url"),
		WorkersURL: viper.GetString("workers_url"),
		UserAgent:  CLIUserAgent,
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = NewStderrLogger(os.Stderr)
	}

	client, err := cosmicclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// StderrLogger writes cosmic.Logger entries as single lines.
type StderrLogger struct {
	mu  sync.Mutex
	out io.Writer
}

// NewStderrLogger creates a logger writing to out.
func NewStderrLogger(out io.Writer) *StderrLogger {
	return &StderrLogger{out: out}
}

func (l *StderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("DEBUG", msg, fields) }

func (l *StderrLogger) Info(msg string, fields map[string]interface{}) { l.log("INFO", msg, fields) }

func (l *StderrLogger) Warn(msg string, fields map[string]interface{}) { l.log("WARN", msg, fields) }

func (l *StderrLogger) Error(msg string, fields map[string]interface{}) { l.log("ERROR", msg, fields) }

func (l *StderrLogger) log(level, msg string, fields map[string]interface{}) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	var line strings.Builder

	line.WriteString("[" + level + "] " + msg)

	for _, key := range keys {
		fmt.Fprintf(&line, " %s=%v", key, fields[key])
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = fmt.Fprintln(l.out, line.String())
}

// printResult writes data as JSON or YAML, or calls table for the default
// table output.
func printResult(data any, table func() error) error {
	switch viper.GetString("output") {
	case constants.FormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		return encoder.Encode(data)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)
		encoder.SetIndent(constants.JSONIndentSize)

		return encoder.Encode(data)
	default:
		return table()
	}
}

// renderTable prints rows under header.
func renderTable(header []string, rows [][]string) error {
	table := tablewriter.NewWriter(os.Stdout)

	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = h
	}

	table.Header(cells...)

	for _, row := range rows {
		_ = table.Append(row)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// titleCase turns labels such as "draft" or "check-boxes" into "Draft" and
// "Check Boxes".
func titleCase(label string) string {
	if label == "" {
		return constants.NotAvailable
	}

	return cases.Title(language.English).String(strings.ReplaceAll(label, "-", " "))
}

// truncate shortens s to at most limit runes.
func truncate(s string, limit int) string {
	runes := []rune(strings.Join(strings.Fields(s), " "))
	if len(runes) <= limit {
		return string(runes)
	}

	return string(runes[:limit-3]) + "..."
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return constants.NotAvailable
	}

	return s
}

// metadataRows flattens metadata into sorted "metadata.<key>" rows. Keys of
// descriptor-shaped metadata carry their field type, e.g. "metadata.hero (Files)".
func metadataRows(metadata *cosmic.Metadata) [][]string {
	values := metadata.ToMap()

	types := make(map[string]cosmic.MetafieldType)
	if fields, ok := metadata.Fields(); ok {
		for _, field := range fields {
			if _, seen := types[field.Key]; !seen && field.Type != "" {
				types[field.Key] = field.Type
			}
		}
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		label := "metadata." + key
		if fieldType, ok := types[key]; ok {
			label += " (" + titleCase(string(fieldType)) + ")"
		}

		rows = append(rows, []string{label, truncate(displayValue(values[key]), constants.ContentPreviewLength)})
	}

	return rows
}

// displayValue renders strings bare and everything else as compact JSON.
func displayValue(value cosmic.Value) string {
	if s, ok := value.AsString(); ok {
		return s
	}

	return value.String()
}

// parseJSONObject decodes raw as a JSON object. An empty input yields nil.
func parseJSONObject(raw string, invalid error) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var object map[string]any

	err := json.Unmarshal([]byte(raw), &object)
	if err != nil || object == nil {
		return nil, invalid
	}

	return object, nil
}

// confirm asks a yes/no question on in and reports whether the answer was
// yes.
func confirm(in io.Reader, out io.Writer, question string) bool {
	_, _ = fmt.Fprintf(out, "%s (y/N): ", question)

	answer, _ := bufio.NewReader(in).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))

	return answer == "y" || answer == "yes"
}
