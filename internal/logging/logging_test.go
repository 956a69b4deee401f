package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseTopics(t *testing.T) {
	got := ParseTopics(" exec, ui ,,", false)
	if !got["exec"] || !got["ui"] || len(got) != 2 {
		t.Fatalf("ParseTopics() = %v, want exec and ui", got)
	}

	got = ParseTopics("", true)
	if !got["all"] {
		t.Fatalf("ParseTopics(verbose) = %v, want all", got)
	}
}

func TestTopicFiltering(t *testing.T) {
	tests := []struct {
		name   string
		topics map[string]bool
		log    func(buf *bytes.Buffer, topics map[string]bool)
		want   bool
	}{
		{
			name:   "untopical info passes",
			topics: map[string]bool{},
			log:    func(b *bytes.Buffer, tp map[string]bool) { New(b, tp).Info("started") },
			want:   true,
		},
		{
			name:   "disabled topic debug dropped",
			topics: map[string]bool{},
			log:    func(b *bytes.Buffer, tp map[string]bool) { New(b, tp).With("topic", TopicExec).Debug("run") },
			want:   false,
		},
		{
			name:   "enabled topic debug passes",
			topics: map[string]bool{TopicExec: true},
			log:    func(b *bytes.Buffer, tp map[string]bool) { New(b, tp).With("topic", TopicExec).Debug("run") },
			want:   true,
		},
		{
			name:   "record level topic attr",
			topics: map[string]bool{TopicUI: true},
			log:    func(b *bytes.Buffer, tp map[string]bool) { New(b, tp).Info("drop", "topic", TopicScript) },
			want:   false,
		},
		{
			name:   "errors always pass",
			topics: map[string]bool{},
			log:    func(b *bytes.Buffer, tp map[string]bool) { New(b, tp).With("topic", TopicExec).Error("tool failed") },
			want:   true,
		},
		{
			name:   "all enables everything",
			topics: map[string]bool{"all": true},
			log:    func(b *bytes.Buffer, tp map[string]bool) { New(b, tp).With("topic", TopicNotify).Debug("sent") },
			want:   true,
		},
		{
			name:   "group keeps topic",
			topics: map[string]bool{},
			log: func(b *bytes.Buffer, tp map[string]bool) {
				New(b, tp).With("topic", TopicUI).WithGroup("tile").Debug("tap", "path", "/a.xbm")
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(&buf, tt.topics)
			if got := strings.TrimSpace(buf.String()) != ""; got != tt.want {
				t.Fatalf("logged = %v (%q), want %v", got, buf.String(), tt.want)
			}
		})
	}
}
