// optool provisions operator credentials for the registry: it generates and
// hashes static tokens and mints operator JWTs. Companion tool to
// cmd/server; never run in the request path.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"waybill/internal/operator"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "token":
		err = tokenCmd(os.Args[2:])
	case "jwt":
		err = jwtCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  optool token              generate a token and its bcrypt hash
  optool token -hash TOKEN  hash an existing token
  optool jwt -key KEY [-subject NAME] [-ttl DURATION]
                            mint an operator JWT`)
}

func tokenCmd(args []string) error {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	existing := fs.String("hash", "", "hash this token instead of generating one")
	if err := fs.Parse(args); err != nil {
		return err
	}

	token := *existing
	if token == "" {
		var err error
		token, err = operator.GenerateToken()
		if err != nil {
			return err
		}
		fmt.Printf("token: %s\n", token)
	}

	hash, err := operator.HashToken(token)
	if err != nil {
		return err
	}
	fmt.Printf("hash:  %s\n", hash)
	fmt.Println("set WAYBILL_OPERATOR_TOKEN_HASH to the hash above")
	return nil
}

func jwtCmd(args []string) error {
	fs := flag.NewFlagSet("jwt", flag.ExitOnError)
	key := fs.String("key", "", "HS256 signing key (matches WAYBILL_OPERATOR_JWT_KEY)")
	subject := fs.String("subject", "operator", "token subject")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *key == "" {
		return fmt.Errorf("-key is required")
	}

	token, err := operator.MintToken([]byte(*key), *subject, *ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
