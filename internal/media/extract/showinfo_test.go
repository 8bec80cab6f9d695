package extract

import "testing"

func TestParseShowinfoFrameLine(t *testing.T) {
	line := "[Parsed_showinfo_1 @ 000002669dfefec0] n:   1 pts:      1 pts_time:120     pos: 14185698 fmt:yuv420p sar:1/1 s:1920x1080 i:P iskey:0 type:B checksum:A91F982B plane_checksum:[7BFA6F14 ED4B1E62 92900AB5] mean:[227 127 130] stdev:[35.1 10.3 10.0]"
	fields := map[string]string{}
	if !parseShowinfo(line, fields) {
		t.Fatal("per-frame line not recognized")
	}
	want := map[string]string{
		"n":              "1",
		"pts":            "1",
		"pts_time":       "120",
		"pos":            "14185698",
		"fmt":            "yuv420p",
		"sar":            "1/1",
		"s":              "1920x1080",
		"i":              "P",
		"iskey":          "0",
		"type":           "B",
		"checksum":       "A91F982B",
		"plane_checksum": "[7BFA6F14 ED4B1E62 92900AB5]",
		"mean":           "[227 127 130]",
		"stdev":          "[35.1 10.3 10.0]",
	}
	for key, value := range want {
		if fields[key] != value {
			t.Fatalf("field %q = %q, want %q", key, fields[key], value)
		}
	}
	if len(fields) != len(want) {
		t.Fatalf("extracted %d fields, want %d: %v", len(fields), len(want), fields)
	}
}

func TestParseShowinfoColorLine(t *testing.T) {
	line := "[Parsed_showinfo_1 @ 000002669dfefec0] color_range:unknown color_space:unknown color_primaries:unknown color_trc:unknown"
	fields := map[string]string{}
	if !parseShowinfo(line, fields) {
		t.Fatal("color metadata line not recognized")
	}
	if fields["color_trc"] != "unknown" {
		t.Fatalf("unexpected fields %v", fields)
	}
}

func TestParseShowinfoRejections(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"unrelated banner", "Output #0, image2pipe, to 'pipe:':"},
		{"config in", "[Parsed_showinfo_1 @ 000002669dfefec0] config in time_base: 120/1, frame_rate: 1/120"},
		{"config out", "[Parsed_showinfo_1 @ 000002669dfefec0] config out time_base: 0/0, frame_rate: 0/0"},
		{"blank", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := map[string]string{}
			if parseShowinfo(tc.line, fields) {
				t.Fatalf("line %q must not be recognized", tc.line)
			}
			if len(fields) != 0 {
				t.Fatalf("rejected line must leave fields untouched, got %v", fields)
			}
		})
	}
}

func TestParseShowinfoLastValueWins(t *testing.T) {
	fields := map[string]string{}
	if !parseShowinfo("[Parsed_showinfo_0 @ 0x1] pts_time:1.0 fmt:rgb24", fields) {
		t.Fatal("first line not recognized")
	}
	if !parseShowinfo("[Parsed_showinfo_0 @ 0x1] pts_time:2.5", fields) {
		t.Fatal("second line not recognized")
	}
	if fields["pts_time"] != "2.5" {
		t.Fatalf("pts_time = %q, want overwrite by later line", fields["pts_time"])
	}
	if fields["fmt"] != "rgb24" {
		t.Fatalf("fields from earlier lines must persist, got %v", fields)
	}
}
