package cli

import (
	"bytes"
	"encoding/json"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func mustRunCLI(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: inquest %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v", env)
	}
	return env
}

func dataMap(t *testing.T, env map[string]any) map[string]any {
	t.Helper()
	m, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object; got: %#v", env["data"])
	}
	return m
}

func TestCLISmoke(t *testing.T) {
	dir := t.TempDir()

	mustRunCLI(t, "--dir", dir, "init")

	inv := mustRunCLI(t, "--dir", dir, "investigations", "create",
		"--title", "Trade Policy", "--summary", "Tariff effects")
	invID, _ := dataMap(t, inv)["id"].(string)
	if invID == "" {
		t.Fatalf("expected investigation id; got: %#v", inv["data"])
	}
	if slug := dataMap(t, inv)["slug"]; slug != "trade-policy" {
		t.Fatalf("expected derived slug; got: %#v", slug)
	}

	claim := mustRunCLI(t, "--dir", dir, "claims", "create",
		"--investigation", invID, "--title", "Tariffs raise prices", "--text", "Prices rise.")
	claimID, _ := dataMap(t, claim)["id"].(string)
	if claimID == "" {
		t.Fatalf("expected claim id; got: %#v", claim["data"])
	}
	if pos := dataMap(t, claim)["position"]; pos != float64(1) {
		t.Fatalf("expected first claim at position 1; got: %#v", pos)
	}

	e1 := mustRunCLI(t, "--dir", dir, "evidence", "add",
		"--claim", claimID, "--content", "Price study", "--quote-type", "statistic")
	e2 := mustRunCLI(t, "--dir", dir, "evidence", "add",
		"--claim", claimID, "--content", "Pass-through data")
	e1ID, _ := dataMap(t, e1)["id"].(string)
	e2ID, _ := dataMap(t, e2)["id"].(string)
	if qt := dataMap(t, e2)["quoteType"]; qt != "example" {
		t.Fatalf("expected default quote type; got: %#v", qt)
	}

	// Swap the two; the response carries the full authoritative sequence.
	reordered := mustRunCLI(t, "--dir", dir, "evidence", "reorder", e2ID, "up")
	seq, ok := reordered["data"].([]any)
	if !ok || len(seq) != 2 {
		t.Fatalf("expected 2-item sequence; got: %#v", reordered["data"])
	}
	first := seq[0].(map[string]any)
	if first["id"] != e2ID {
		t.Fatalf("expected %s first after reorder; got: %#v", e2ID, first)
	}

	// Reordering past the boundary fails without touching the store.
	if _, _, err := runCLI(t, []string{"--dir", dir, "evidence", "reorder", e2ID, "up"}); err == nil {
		t.Fatal("expected boundary reorder to fail")
	}
	shown := mustRunCLI(t, "--dir", dir, "claims", "show", claimID)
	ev, _ := dataMap(t, shown)["evidence"].([]any)
	if len(ev) != 2 || ev[0].(map[string]any)["id"] != e2ID || ev[1].(map[string]any)["id"] != e1ID {
		t.Fatalf("expected order preserved after rejected reorder; got: %#v", ev)
	}

	doctor := mustRunCLI(t, "--dir", dir, "doctor")
	if issues, ok := dataMap(t, doctor)["issues"].([]any); ok && len(issues) != 0 {
		t.Fatalf("expected clean doctor report; got: %#v", issues)
	}
}

func TestCLILinkCycleRejected(t *testing.T) {
	dir := t.TempDir()

	mustRunCLI(t, "--dir", dir, "init", "--demo")

	// Demo data already links a trade claim to the labor investigation.
	claim := mustRunCLI(t, "--dir", dir, "claims", "create",
		"--investigation", "inv-labor", "--title", "Wages track tariffs")
	claimID, _ := dataMap(t, claim)["id"].(string)

	if _, _, err := runCLI(t, []string{"--dir", dir, "claims", "link", claimID, "inv-trade"}); err == nil {
		t.Fatal("expected link cycle to be rejected")
	}

	shown := mustRunCLI(t, "--dir", dir, "claims", "show", claimID)
	cl := dataMap(t, shown)["claim"].(map[string]any)
	if _, set := cl["linkedInvestigationId"]; set {
		t.Fatalf("rejected link must not be stored; got: %#v", cl)
	}
}

func TestCLICommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"init"},
		{"investigations", "list"},
		{"investigations", "show"},
		{"claims", "show"},
		{"claims", "link"},
		{"claims", "reorder"},
		{"evidence", "add"},
		{"evidence", "reorder"},
		{"counterarguments", "add"},
		{"outline", "show"},
		{"outline", "collect"},
		{"outline", "browse"},
		{"serve"},
		{"doctor"},
	} {
		cmd := NewRootCmd()
		found, _, err := cmd.Find(path)
		if err != nil || found == nil {
			t.Fatalf("expected command %v to exist: %v", path, err)
		}
	}
}
