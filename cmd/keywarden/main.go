package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/keywarden/keywarden/internal/client/api"
	"github.com/keywarden/keywarden/internal/models"
)

var (
	version   string
	buildDate string
)

// main parses command-line flags and dispatches to the vault commands.
func main() {
	var (
		cmd     string
		baseURL string
		caFile  string
		user    string
		keyType string
		showVer bool
	)

	flag.StringVar(&cmd, "cmd", "", "command: store | retrieve | delete | clear | verify-password | verify-format")
	flag.StringVar(&baseURL, "url", "https://localhost:8466", "daemon base URL")
	flag.StringVar(&caFile, "ca", "certs/server.crt", "path to the daemon's certificate")
	flag.StringVar(&user, "user", "", "wallet account name")
	flag.StringVar(&keyType, "type", "owner", "key type: owner | active | posting | memo")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("keywarden\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	client, err := api.New(baseURL, caFile)
	if err != nil {
		log.Fatal(err)
	}

	switch cmd {
	case "store":
		requireUser(user)
		privateKey, err := api.ReadLine(os.Stdin, "Private key: ")
		if err != nil {
			log.Fatal(err)
		}
		password, err := api.ReadPasswordConfirmed("Password: ", "Confirm password: ")
		if err != nil {
			log.Fatal(err)
		}
		if err := client.StoreKey(models.StoreKeyRequest{
			Username:   user,
			KeyType:    keyType,
			PrivateKey: privateKey,
			Password:   password,
		}); err != nil {
			log.Fatal(err)
		}
		fmt.Println("✅ Key sealed and stored")
	case "retrieve":
		requireUser(user)
		password, err := api.ReadPassword("Password: ")
		if err != nil {
			log.Fatal(err)
		}
		privateKey, err := client.RetrieveKey(models.RetrieveKeyRequest{
			Username: user,
			KeyType:  keyType,
			Password: password,
		})
		if err != nil {
			log.Fatal(err)
		}
		// The recovered key goes to stdout and nowhere else
		fmt.Println(privateKey)
	case "delete":
		requireUser(user)
		if err := client.DeleteKey(user, keyType); err != nil {
			log.Fatal(err)
		}
		fmt.Println("✅ Key deleted")
	case "clear":
		answer, err := api.ReadLine(os.Stdin, "Delete ALL stored keys? Type 'yes' to confirm: ")
		if err != nil {
			log.Fatal(err)
		}
		if answer != "yes" {
			fmt.Println("Aborted")
			return
		}
		if err := client.Clear(); err != nil {
			log.Fatal(err)
		}
		fmt.Println("✅ Store cleared")
	case "verify-password":
		password, err := api.ReadPassword("Password: ")
		if err != nil {
			log.Fatal(err)
		}
		valid, err := client.VerifyPassword(password)
		if err != nil {
			log.Fatal(err)
		}
		printVerdict(valid)
	case "verify-format":
		privateKey, err := api.ReadLine(os.Stdin, "Private key: ")
		if err != nil {
			log.Fatal(err)
		}
		valid, err := client.VerifyKeyFormat(privateKey)
		if err != nil {
			log.Fatal(err)
		}
		printVerdict(valid)
	default:
		log.Fatalf("unknown command: %s", cmd)
	}
}

func requireUser(user string) {
	if user == "" {
		log.Fatal("please provide -user=<account>")
	}
}

func printVerdict(valid bool) {
	if valid {
		fmt.Println("✅ valid")
	} else {
		fmt.Println("❌ invalid")
	}
}
