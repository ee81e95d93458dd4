package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"

	"workout-tracker/backend/internal/domain/collections"
)

// Marks a user profile as admin so it can issue invites.
func main() {
	uid := flag.String("uid", "", "target firebase uid")
	flag.Parse()
	if *uid == "" {
		log.Fatal("uid is required: -uid=xxxxx")
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil)
	if err != nil {
		log.Fatalf("firebase.NewApp: %v", err)
	}
	fs, err := app.Firestore(ctx)
	if err != nil {
		log.Fatalf("app.Firestore: %v", err)
	}
	defer fs.Close()

	_, err = fs.Collection(collections.Users).Doc(*uid).Set(ctx, map[string]any{
		"isAdmin": true,
	}, firestore.MergeAll)
	if err != nil {
		log.Fatalf("failed to mark profile: %v", err)
	}

	fmt.Println("ok: admin flag set for", *uid)
}
