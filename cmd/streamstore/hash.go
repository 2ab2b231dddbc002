package main

import (
	"fmt"
	"os"

	"github.com/talkincode/streamstore/internal/auth"
)

func printHash(password string) int {
	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(hash)
	return 0
}
