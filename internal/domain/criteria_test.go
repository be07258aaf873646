package domain

import (
	"reflect"
	"testing"
)

func TestParseCriteria(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Criteria
	}{
		{
			name:  "empty string",
			input: "",
			want:  Criteria{},
		},
		{
			name:  "new clients only",
			input: "new_clients",
			want:  Criteria{NewClients: true},
		},
		{
			name:  "single contract",
			input: "auto_contract",
			want:  Criteria{ContractTypes: []ContractType{ContractAuto}},
		},
		{
			name:  "contracts in canonical order regardless of token order",
			input: "health_contract,auto_contract,home_contract",
			want:  Criteria{ContractTypes: []ContractType{ContractAuto, ContractHome, ContractHealth}},
		},
		{
			name:  "city list absorbs following tokens",
			input: "city_any:Tunis,Sfax",
			want:  Criteria{Cities: []string{"Tunis", "Sfax"}},
		},
		{
			name:  "keyword after city list closes it",
			input: "city_any:Tunis,Sfax,auto_contract",
			want: Criteria{
				ContractTypes: []ContractType{ContractAuto},
				Cities:        []string{"Tunis", "Sfax"},
			},
		},
		{
			name:  "all criteria combined",
			input: "new_clients,home_contract,city_any:Tunis,Bizerte",
			want: Criteria{
				NewClients:    true,
				ContractTypes: []ContractType{ContractHome},
				Cities:        []string{"Tunis", "Bizerte"},
			},
		},
		{
			name:  "whitespace around tokens is trimmed",
			input: " new_clients , auto_contract , city_any: Tunis , Sfax ",
			want: Criteria{
				NewClients:    true,
				ContractTypes: []ContractType{ContractAuto},
				Cities:        []string{"Tunis", "Sfax"},
			},
		},
		{
			name:  "unknown tokens outside a city list are ignored",
			input: "vip_clients,auto_contract",
			want:  Criteria{ContractTypes: []ContractType{ContractAuto}},
		},
		{
			name:  "empty city prefix yields no cities",
			input: "city_any:",
			want:  Criteria{},
		},
		{
			name:  "duplicate contract tokens collapse",
			input: "auto_contract,auto_contract",
			want:  Criteria{ContractTypes: []ContractType{ContractAuto}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCriteria(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseCriteria(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCriteriaRoundTrip(t *testing.T) {
	inputs := []string{
		"new_clients",
		"auto_contract,home_contract",
		"new_clients,health_contract,city_any:Tunis,Sfax",
		"city_any:Sousse",
	}

	for _, input := range inputs {
		parsed := ParseCriteria(input)
		again := ParseCriteria(parsed.String())
		if !reflect.DeepEqual(parsed, again) {
			t.Errorf("round trip of %q changed criteria: %+v vs %+v", input, parsed, again)
		}
	}
}

func TestCriteriaEmpty(t *testing.T) {
	if !ParseCriteria("").Empty() {
		t.Error("expected empty criteria for empty string")
	}
	if !ParseCriteria("unknown_token").Empty() {
		t.Error("expected empty criteria when only unknown tokens present")
	}
	if ParseCriteria("new_clients").Empty() {
		t.Error("expected non-empty criteria")
	}
}

func TestCampaignStatusTransitions(t *testing.T) {
	launchable := map[CampaignStatus]bool{
		CampaignPending:  true,
		CampaignApproved: true,
		CampaignRejected: false,
		CampaignSent:     false,
		CampaignEmpty:    false,
	}
	for status, want := range launchable {
		if got := status.Launchable(); got != want {
			t.Errorf("%s.Launchable() = %v, want %v", status, got, want)
		}
	}

	for _, status := range []CampaignStatus{CampaignPending, CampaignApproved, CampaignRejected, CampaignEmpty} {
		if !status.Mutable() {
			t.Errorf("%s should be mutable", status)
		}
	}
	if CampaignSent.Mutable() {
		t.Error("SENT campaign must not be mutable")
	}
}
