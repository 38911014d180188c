/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/careerhub/frontdesk/cmd"

func main() {
	cmd.Execute()
}
