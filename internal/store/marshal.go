package store

import (
	"encoding/json"
	"fmt"

	"github.com/docketd/docket/internal/domain"
)

// JSON column helpers. Empty collections serialize as "[]"/"{}" rather than
// "null" so scans always produce non-nil values.

func marshalParties(parties []domain.Party) (string, error) {
	if parties == nil {
		parties = []domain.Party{}
	}
	b, err := json.Marshal(parties)
	if err != nil {
		return "", fmt.Errorf("marshal parties: %w", err)
	}
	return string(b), nil
}

func unmarshalParties(s string) ([]domain.Party, error) {
	var parties []domain.Party
	if err := json.Unmarshal([]byte(s), &parties); err != nil {
		return nil, fmt.Errorf("unmarshal parties: %w", err)
	}
	return parties, nil
}

func marshalLinks(links []domain.Link) (string, error) {
	if links == nil {
		links = []domain.Link{}
	}
	b, err := json.Marshal(links)
	if err != nil {
		return "", fmt.Errorf("marshal links: %w", err)
	}
	return string(b), nil
}

func unmarshalLinks(s string) ([]domain.Link, error) {
	var links []domain.Link
	if err := json.Unmarshal([]byte(s), &links); err != nil {
		return nil, fmt.Errorf("unmarshal links: %w", err)
	}
	return links, nil
}

func marshalMetadata(meta map[string]any) (string, error) {
	if meta == nil {
		meta = map[string]any{}
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal metadata: %w", err)
	}
	return string(b), nil
}

func unmarshalMetadata(s string) (map[string]any, error) {
	var meta map[string]any
	if err := json.Unmarshal([]byte(s), &meta); err != nil {
		return nil, fmt.Errorf("unmarshal metadata: %w", err)
	}
	if len(meta) == 0 {
		return nil, nil
	}
	return meta, nil
}

func marshalArtifacts(artifacts []domain.Artifact) (string, error) {
	if artifacts == nil {
		artifacts = []domain.Artifact{}
	}
	b, err := json.Marshal(artifacts)
	if err != nil {
		return "", fmt.Errorf("marshal artifacts: %w", err)
	}
	return string(b), nil
}

func unmarshalArtifacts(s string) ([]domain.Artifact, error) {
	var artifacts []domain.Artifact
	if err := json.Unmarshal([]byte(s), &artifacts); err != nil {
		return nil, fmt.Errorf("unmarshal artifacts: %w", err)
	}
	return artifacts, nil
}

func marshalObjects(objects []domain.ObjectRef) (string, error) {
	if objects == nil {
		objects = []domain.ObjectRef{}
	}
	b, err := json.Marshal(objects)
	if err != nil {
		return "", fmt.Errorf("marshal objects: %w", err)
	}
	return string(b), nil
}

func unmarshalObjects(s string) ([]domain.ObjectRef, error) {
	var objects []domain.ObjectRef
	if err := json.Unmarshal([]byte(s), &objects); err != nil {
		return nil, fmt.Errorf("unmarshal objects: %w", err)
	}
	if len(objects) == 0 {
		return nil, nil
	}
	return objects, nil
}

func marshalDetail(detail domain.TraceDetail) (string, error) {
	b, err := json.Marshal(detail)
	if err != nil {
		return "", fmt.Errorf("marshal detail: %w", err)
	}
	return string(b), nil
}

func unmarshalDetail(s string) (domain.TraceDetail, error) {
	var detail domain.TraceDetail
	if err := json.Unmarshal([]byte(s), &detail); err != nil {
		return domain.TraceDetail{}, fmt.Errorf("unmarshal detail: %w", err)
	}
	return detail, nil
}
