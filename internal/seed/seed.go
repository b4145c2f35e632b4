// Package seed loads the built-in datasets and reference configuration that a
// fresh store starts with.
package seed

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/me/optrack/internal/store"
	"github.com/me/optrack/pkg/model"
)

//go:embed data/*.yaml
var files embed.FS

// record is the on-disk shape of a submission. Seed comments are a single
// free-text string and become one note.
type record struct {
	model.Submission `yaml:",inline"`
	Comments         string `yaml:"comments"`
}

func (r record) submission(now time.Time) *model.Submission {
	sub := r.Submission
	if r.Comments != "" {
		sub.Comments = []model.Comment{{
			ID:        uuid.New().String(),
			Type:      model.CommentNote,
			Text:      r.Comments,
			CreatedAt: now,
		}}
	}
	return &sub
}

// ReportType describes the choices the new-entry form offers for one report type.
type ReportType struct {
	Name             string   `yaml:"name" json:"name"`
	ReportParties    []string `yaml:"report_parties" json:"report_parties"`
	Frequencies      []string `yaml:"frequencies" json:"frequencies"`
	DefaultFrequency string   `yaml:"default_frequency" json:"default_frequency"`
}

// allows reports whether v is one of the options in list.
func allows(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// AllowsParty reports whether party is a valid report party for the type.
func (rt ReportType) AllowsParty(party string) bool { return allows(rt.ReportParties, party) }

// AllowsFrequency reports whether freq is a valid frequency for the type.
func (rt ReportType) AllowsFrequency(freq string) bool { return allows(rt.Frequencies, freq) }

// Catalog is the reference data behind the new-entry form.
type Catalog struct {
	Operators   []string     `yaml:"operators" json:"operators"`
	Properties  []string     `yaml:"properties" json:"properties"`
	ReportTypes []ReportType `yaml:"report_types" json:"report_types"`
}

// ReportType looks up a report type by name.
func (c *Catalog) ReportType(name string) (ReportType, bool) {
	for _, rt := range c.ReportTypes {
		if rt.Name == name {
			return rt, true
		}
	}
	return ReportType{}, false
}

// Relationship is the set of people assigned to an operator.
type Relationship struct {
	AssetManager string `yaml:"asset_manager" json:"asset_manager"`
	LeaseAdmin   string `yaml:"lease_admin" json:"lease_admin"`
	InvManager   string `yaml:"inv_manager" json:"inv_manager"`
	InvAssociate string `yaml:"inv_associate" json:"inv_associate"`
}

// Directory maps operators to their relationship team and report types to
// their reviewer.
type Directory struct {
	Relationships map[string]Relationship `yaml:"relationships" json:"relationships"`
	Reviewers     map[string]string       `yaml:"reviewers" json:"reviewers"`
}

func decode(name string, v any) error {
	data, err := files.ReadFile("data/" + name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// LoadCatalog parses the embedded report-type catalogue.
func LoadCatalog() (*Catalog, error) {
	var c Catalog
	if err := decode("report_types.yaml", &c); err != nil {
		return nil, err
	}
	for _, rt := range c.ReportTypes {
		if len(rt.ReportParties) == 0 || !rt.AllowsFrequency(rt.DefaultFrequency) {
			return nil, fmt.Errorf("report type %q: default frequency %q not offered or no report parties", rt.Name, rt.DefaultFrequency)
		}
	}
	return &c, nil
}

// LoadDirectory parses the embedded relationship directory.
func LoadDirectory() (*Directory, error) {
	var d Directory
	if err := decode("directory.yaml", &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func parseRecords(name string, data []byte) ([]record, error) {
	var recs []record
	if err := yaml.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	for i, r := range recs {
		if r.ID == "" {
			return nil, fmt.Errorf("%s: record %d has no id", name, i)
		}
		if !r.Status.Valid() {
			return nil, fmt.Errorf("%s: %s has invalid status %q", name, r.ID, r.Status)
		}
	}
	return recs, nil
}

// Options controls Load.
type Options struct {
	// SubmissionsFile replaces the embedded live submissions when set.
	SubmissionsFile string
}

// Summary counts what Load inserted.
type Summary struct {
	Live      int
	Archived  int
	Reminders int
}

// Load fills a freshly migrated store with the seed datasets.
func Load(ctx context.Context, st store.Store, opts Options, logger *slog.Logger) (Summary, error) {
	var sum Summary
	now := time.Now().UTC()

	liveName := "submissions.yaml"
	liveData, err := files.ReadFile("data/" + liveName)
	if opts.SubmissionsFile != "" {
		liveName = opts.SubmissionsFile
		liveData, err = os.ReadFile(opts.SubmissionsFile)
	}
	if err != nil {
		return sum, fmt.Errorf("read %s: %w", liveName, err)
	}
	live, err := parseRecords(liveName, liveData)
	if err != nil {
		return sum, err
	}

	archivedData, err := files.ReadFile("data/archived.yaml")
	if err != nil {
		return sum, fmt.Errorf("read archived.yaml: %w", err)
	}
	archived, err := parseRecords("archived.yaml", archivedData)
	if err != nil {
		return sum, err
	}

	for _, r := range live {
		if err := st.CreateSubmission(ctx, model.DatasetLive, r.submission(now)); err != nil {
			return sum, fmt.Errorf("seed %s: %w", r.ID, err)
		}
		sum.Live++
	}
	for _, r := range archived {
		if err := st.CreateSubmission(ctx, model.DatasetArchived, r.submission(now)); err != nil {
			return sum, fmt.Errorf("seed %s: %w", r.ID, err)
		}
		sum.Archived++
	}

	var reminders []*model.Reminder
	if err := decode("reminders.yaml", &reminders); err != nil {
		return sum, err
	}
	for _, rem := range reminders {
		if err := st.CreateReminder(ctx, rem); err != nil {
			return sum, fmt.Errorf("seed reminder %s: %w", rem.ID, err)
		}
		sum.Reminders++
	}

	logger.Info("seed data loaded",
		"live", sum.Live,
		"archived", sum.Archived,
		"reminders", sum.Reminders,
		"source", liveName,
	)
	return sum, nil
}
