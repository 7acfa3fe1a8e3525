package scm_test

import (
	"testing"
	"time"

	"scm-event-dispatcher/internal/model"
	"scm-event-dispatcher/internal/scm"
)

func TestClassifyRef(t *testing.T) {
	tag := model.HeadTag
	branch := model.HeadBranch

	tests := []struct {
		name     string
		ref      string
		explicit *model.HeadKind
		want     model.RefDescriptor
	}{
		{"branch prefix", "refs/heads/main", nil, model.RefDescriptor{Kind: model.HeadBranch, Name: "main"}},
		{"nested branch", "refs/heads/feature/x", nil, model.RefDescriptor{Kind: model.HeadBranch, Name: "feature/x"}},
		{"tag prefix", "refs/tags/v1.0", nil, model.RefDescriptor{Kind: model.HeadTag, Name: "v1.0"}},
		{"prefix wins over explicit", "refs/heads/main", &tag, model.RefDescriptor{Kind: model.HeadBranch, Name: "main"}},
		{"unprefixed explicit tag", "v2", &tag, model.RefDescriptor{Kind: model.HeadTag, Name: "v2"}},
		{"unprefixed explicit branch", "dev", &branch, model.RefDescriptor{Kind: model.HeadBranch, Name: "dev"}},
		{"unprefixed defaults to branch", "dev", nil, model.RefDescriptor{Kind: model.HeadBranch, Name: "dev"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := scm.ClassifyRef(tc.ref, tc.explicit); got != tc.want {
				t.Errorf("ClassifyRef(%q) = %+v, want %+v", tc.ref, got, tc.want)
			}
		})
	}
}

func TestHeadHelpers(t *testing.T) {
	ts := time.Unix(1700000000, 0)

	if got := scm.BranchHeadOf("refs/heads/main"); got.Name != "main" {
		t.Errorf("BranchHeadOf stripped to %q", got.Name)
	}
	if got := scm.BranchHeadOf("refs/tags/v1"); got.Name != "refs/tags/v1" {
		t.Errorf("BranchHeadOf must only strip the branch prefix, got %q", got.Name)
	}
	if got := scm.TagHeadOf("refs/tags/v1", ts); got.Name != "v1" || !got.Timestamp.Equal(ts) {
		t.Errorf("TagHeadOf = %+v", got)
	}
	if !scm.IsTagRef("refs/tags/v1") || scm.IsTagRef("refs/heads/v1") {
		t.Error("IsTagRef mismatch")
	}
	if _, ok := scm.HeadOf(model.RefDescriptor{Kind: model.HeadTag, Name: "v1"}, ts).(model.Tag); !ok {
		t.Error("HeadOf tag descriptor should build a Tag")
	}
}
