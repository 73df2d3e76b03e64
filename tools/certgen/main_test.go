package main

import (
	"crypto/tls"
	"os"
	"path/filepath"
	"testing"
)

func TestProvision(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "certs")

	certPath, keyPath, err := provision(dir)
	if err != nil {
		t.Fatalf("provision error: %v", err)
	}
	if filepath.Dir(certPath) != dir || filepath.Dir(keyPath) != dir {
		t.Errorf("material written outside %s: %s, %s", dir, certPath, keyPath)
	}
	if _, err := os.Stat(certPath); err != nil {
		t.Errorf("cert file missing: %v", err)
	}
	if _, err := os.Stat(keyPath); err != nil {
		t.Errorf("key file missing: %v", err)
	}
	if _, err := tls.LoadX509KeyPair(certPath, keyPath); err != nil {
		t.Errorf("provisioned cert/key do not load: %v", err)
	}
}

func TestProvision_Idempotent(t *testing.T) {
	dir := t.TempDir()

	certPath, _, err := provision(dir)
	if err != nil {
		t.Fatalf("first provision error: %v", err)
	}
	first, err := os.ReadFile(certPath)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := provision(dir); err != nil {
		t.Fatalf("second provision error: %v", err)
	}
	second, err := os.ReadFile(certPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Error("repeat provisioning replaced existing material")
	}
}
