// Package main pre-provisions the vault daemon's TLS material, writing
// the self-signed serving certificate and key into the certs directory.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/keywarden/keywarden/internal/certgen"
)

func main() {
	dir := flag.String("dir", "certs", "directory for the serving cert and key")
	flag.Parse()

	certPath, keyPath, err := provision(*dir)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("✅ Serving certificate ready: %s, %s\n", certPath, keyPath)
}

// provision writes the serving certificate and key under dir if they do
// not already exist and returns their paths.
func provision(dir string) (certPath, keyPath string, err error) {
	return certgen.EnsureServerCert(dir)
}
