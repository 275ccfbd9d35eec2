package gate

import (
	"context"
	"errors"
	"regexp"

	"golang.org/x/text/unicode/norm"

	"github.com/docketd/docket/internal/domain"
	"github.com/docketd/docket/internal/store"
)

// validator checks one write operation's policy before any state changes.
// A validator either returns nil (mutation proceeds) or a typed error; it
// never applies state itself.
type validator func(ctx context.Context, payload map[string]any, caseContext string) error

// minJustificationLen is the shortest acceptable link justification.
const minJustificationLen = 10

// namingStandard is the filename compliance pattern: three uppercase letters,
// an ISO date, an uppercase category token, an alphanumeric-or-hyphen token,
// and a lowercase extension, underscore-separated.
//
// Example: EVD_2024-01-15_EXHIBIT_contract-v2.pdf
var namingStandard = regexp.MustCompile(`^[A-Z]{3}_\d{4}-\d{2}-\d{2}_[A-Z_]+_[A-Za-z0-9-]+\.[a-z0-9]+$`)

// validators returns the registered validator chain keyed by operation name.
// Write names without an entry skip validation and rely on downstream checks.
func (g *Gate) validators() map[string]validator {
	return map[string]validator{
		"doc_status_transition": g.validateTransition,
		"doc_rename":            g.validateRename,
		"doc_link_create":       g.validateLink,
	}
}

// validateTransition checks the requested status change against the
// lifecycle transition table. Unknown current statuses have an empty allowed
// set, which blocks all transitions.
func (g *Gate) validateTransition(ctx context.Context, payload map[string]any, _ string) error {
	req, err := decodeTransition(payload)
	if err != nil {
		return err
	}

	doc, err := g.store.FindDocument(ctx, req.DocumentID)
	if errors.Is(err, store.ErrDocumentNotFound) {
		return newObjectNotFound(req.DocumentID)
	}
	if err != nil {
		return err
	}

	if !domain.CanTransition(doc.Status, req.ToStatus) {
		return newIllegalTransition(string(doc.Status), string(req.ToStatus))
	}
	return nil
}

// validateRename checks the proposed filename against the naming standard.
// The name is NFC-normalized before matching so visually identical composed
// and decomposed forms validate the same way.
func (g *Gate) validateRename(_ context.Context, payload map[string]any, _ string) error {
	req, err := decodeRename(payload)
	if err != nil {
		return err
	}

	name := norm.NFC.String(req.NewName)
	if !namingStandard.MatchString(name) {
		return newNamingNonCompliant(req.NewName)
	}
	return nil
}

// validateLink checks the justification requirement and the cross-case
// isolation invariant. Endpoints that do not resolve to stored documents are
// permitted: links may reference not-yet-ingested or external objects.
// Isolation is violated only when both endpoints resolve and their owning
// cases differ.
func (g *Gate) validateLink(ctx context.Context, payload map[string]any, _ string) error {
	req, err := decodeLink(payload)
	if err != nil {
		return err
	}

	if len([]rune(req.Justification)) < minJustificationLen {
		return newMissingJustification()
	}

	fromDoc, fromErr := g.store.FindDocument(ctx, req.From.ID)
	toDoc, toErr := g.store.FindDocument(ctx, req.To.ID)
	if fromErr == nil && toErr == nil && fromDoc.CaseID != toDoc.CaseID {
		return newIsolationViolation(fromDoc.CaseID, toDoc.CaseID)
	}
	for _, err := range []error{fromErr, toErr} {
		if err != nil && !errors.Is(err, store.ErrDocumentNotFound) {
			return err
		}
	}
	return nil
}
