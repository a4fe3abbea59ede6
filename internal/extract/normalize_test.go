package extract

import "testing"

func TestNormalizeConstValue(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"21000000", "21,000,000"},
		{"500", "500"},
		{"1000", "1,000"},
		{"0001234", "1,234"},
		{"0100", "100"},
		{"0000", "0"},
		{"007", "007"}, // short values are kept as written
		{"4_000_000", "4,000,000"},
		{"21_000_000 * 100_000_000", "2,100,000,000,000,000"},
		{"21_000_000\n    * 100_000_000", "2,100,000,000,000,000"},
		{"1_000", "1_000"}, // not above 1000
		{"0x1d00_ffff", "0x1d00_ffff"},
		{"2 * 5", "2 * 5"}, // no underscore grouping
		{"1_0 0", "1_0 0"}, // evaluation fails
		{"Duration::from_secs(600)", "Duration::from_secs(600)"},
		{"[0u8;  32]", "[0u8; 32]"},
	}
	for _, tt := range tests {
		if got := NormalizeConstValue(tt.raw); got != tt.want {
			t.Errorf("NormalizeConstValue(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestGroupThousands(t *testing.T) {
	tests := map[string]string{
		"1":          "1",
		"999":        "999",
		"1234":       "1,234",
		"123456":     "123,456",
		"1234567":    "1,234,567",
		"12a4":       "12a4",
		"":           "",
		"2100000000": "2,100,000,000",
	}
	for in, want := range tests {
		if got := GroupThousands(in); got != want {
			t.Errorf("GroupThousands(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaultValue(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
		ok   bool
	}{
		{"product", "\n    512 * 1024 * 1024\n", "536870912", true},
		{"product of two", " 64 * 1024 ", "65536", true},
		{"return", "\n    let x = 1;\n    return 300;\n", "300", true},
		{"bare", " 8 ", "8", true},
		{"comment", "\n    300 // 5 minutes\n", "300 (5 minutes)", true},
		{"string", ` "mainnet".to_string() `, `"mainnet"`, true},
		{"true", " true ", "true", true},
		{"false", " false ", "false", true},
		{"path", " PathBuf::from(DATA_DIR) ", "", false},
		{"empty string", ` String::new() `, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DefaultValue(tt.body)
			if ok != tt.ok || got != tt.want {
				t.Errorf("DefaultValue(%q) = %q, %v; want %q, %v", tt.body, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSettingName(t *testing.T) {
	if got := SettingName("default_max_peers", "default_"); got != "max.peers" {
		t.Errorf("SettingName = %q, want max.peers", got)
	}
}

func TestStripMarkdownLinks(t *testing.T) {
	got := StripMarkdownLinks("See [BIP 141](https://example.com/bip-0141) for details")
	if got != "See BIP 141 for details" {
		t.Errorf("StripMarkdownLinks = %q", got)
	}
}
