// Package provision creates cases and their fixed branches from fixture
// files. Provisioning happens before the gate ever sees a case: the gate
// treats cases and branches as read-mostly records that already exist.
//
// Fixtures are YAML documents validated against an embedded CUE schema, so a
// malformed fixture is rejected whole before any insert.
package provision

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/docketd/docket/internal/domain"
	"github.com/docketd/docket/internal/store"
)

//go:embed schema.cue
var schemaCUE string

// Fixture is the root of a provisioning file.
type Fixture struct {
	Cases []CaseFixture `yaml:"cases" json:"cases"`
}

// CaseFixture describes one case to provision.
type CaseFixture struct {
	ID              string         `yaml:"id" json:"id"`
	Title           string         `yaml:"title" json:"title"`
	Jurisdiction    string         `yaml:"jurisdiction" json:"jurisdiction"`
	Confidentiality string         `yaml:"confidentiality" json:"confidentiality"`
	Parties         []PartyFixture `yaml:"parties,omitempty" json:"parties,omitempty"`
}

// PartyFixture describes one party attached to a case.
type PartyFixture struct {
	Role  string `yaml:"role" json:"role"`
	Label string `yaml:"label" json:"label"`
	Notes string `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// LoadFile reads and validates a fixture file.
func LoadFile(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	return Load(data)
}

// Load parses fixture YAML and validates it against the embedded schema.
func Load(data []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	if err := validate(f); err != nil {
		return Fixture{}, err
	}
	return f, nil
}

// validate unifies the fixture with the #Fixture schema definition and
// requires a concrete result.
func validate(f Fixture) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE).LookupPath(cue.ParsePath("#Fixture"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile fixture schema: %w", err)
	}

	val := ctx.Encode(f)
	if err := val.Err(); err != nil {
		return fmt.Errorf("encode fixture: %w", err)
	}

	if err := schema.Unify(val).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("fixture schema violation: %w", err)
	}
	return nil
}

// Provisioner inserts validated fixtures into a record store.
type Provisioner struct {
	store store.Store
	ids   domain.IDGenerator
	now   func() time.Time
}

// NewProvisioner creates a Provisioner over the given store.
func NewProvisioner(s store.Store, ids domain.IDGenerator, now func() time.Time) *Provisioner {
	if ids == nil {
		ids = domain.UUIDv7Generator{}
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Provisioner{store: s, ids: ids, now: now}
}

// Apply inserts every case in the fixture, each with the 13 fixed branches,
// and appends one provisioning trace event per case. Returns the number of
// cases created.
func (p *Provisioner) Apply(ctx context.Context, f Fixture) (int, error) {
	for i, cf := range f.Cases {
		created := p.now()

		c := domain.Case{
			ID:              cf.ID,
			Title:           cf.Title,
			Jurisdiction:    cf.Jurisdiction,
			Confidentiality: domain.Confidentiality(cf.Confidentiality),
			CreatedAt:       created,
			Branches:        domain.FixedBranches(),
		}
		for _, pf := range cf.Parties {
			c.Parties = append(c.Parties, domain.Party{
				Role:  domain.PartyRole(pf.Role),
				Label: pf.Label,
				Notes: pf.Notes,
			})
		}

		if err := p.store.PutCase(ctx, c); err != nil {
			return i, fmt.Errorf("provision case %s: %w", cf.ID, err)
		}

		ev := domain.TraceEvent{
			ID:        p.ids.NewID(),
			CaseID:    c.ID,
			Seq:       int64(i + 1),
			Timestamp: created,
			Actor:     domain.GateActor,
			Type:      "CASE_PROVISION",
			Detail: domain.TraceDetail{
				Summary:   fmt.Sprintf("case %s provisioned", c.ID),
				RequestID: p.ids.NewID(),
			},
		}
		if err := p.store.AppendTrace(ctx, ev); err != nil {
			return i, fmt.Errorf("provision case %s: %w", cf.ID, err)
		}

		slog.Info("case provisioned", "case_id", c.ID, "parties", len(c.Parties))
	}
	return len(f.Cases), nil
}
