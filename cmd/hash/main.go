// Prints the bcrypt hash of a password, for provisioning
// ADMIN_PASSWORD_HASH.
package main

import (
	"fmt"
	"log"
	"os"

	"kronibola/internal/auth"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <password>", os.Args[0])
	}
	hash, err := auth.HashPassword(os.Args[1])
	if err != nil {
		log.Fatalf("hash: %v", err)
	}
	fmt.Println(hash)
}
