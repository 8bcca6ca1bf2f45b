package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Dealboard API
// @version         0.1.0
// @description     Deal listing, scoring, submission, voting, comments, and cart.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
