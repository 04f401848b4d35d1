package main

import (
	"class-registration-service/internal/app/config"
	"class-registration-service/internal/pkg/utils"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
)

// tokengen prints the registration link token for one student. Staff tooling
// runs it when sending the registration email.
func main() {
	internalConfig := config.NewInternalConfig()

	studentID := flag.String("student", "", "record-store id of the student")
	expiry := flag.Int("exp", internalConfig.JWT.ExpTimeInHour, "token lifetime in hours")
	baseURL := flag.String("link", "", "optional registration page url, prints a full link when set")
	flag.Parse()

	if *studentID == "" {
		flag.Usage()
		os.Exit(2)
	}

	token, err := utils.GenerateRegistrationJWT(*studentID, internalConfig.JWT.Secret, *expiry)
	if err != nil {
		log.Fatalf("Error generating registration token: %v", err)
	}

	if *baseURL == "" {
		fmt.Println(token)
		return
	}

	link, err := url.Parse(*baseURL)
	if err != nil {
		log.Fatalf("Error parsing link %q: %v", *baseURL, err)
	}
	query := link.Query()
	query.Set("token", token)
	link.RawQuery = query.Encode()
	fmt.Println(link.String())
}
