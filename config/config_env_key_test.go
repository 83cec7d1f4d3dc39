package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"fitbit": map[string]any{
			"tokenUrl":       "",
			"clientIdSecret": "",
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"firebase": map[string]any{
			"projectId": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "FITBIT_TOKENURL", want: "fitbit.tokenUrl"},
		{envKey: "FITBIT_CLIENTIDSECRET", want: "fitbit.clientIdSecret"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "FIREBASE_PROJECTID", want: "firebase.projectId"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
