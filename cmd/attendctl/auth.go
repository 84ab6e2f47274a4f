package main

import (
	"bufio"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartattend/go-attend/client"
)

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()

			if email == "" {
				email = prompt("Email: ")
			}
			if password == "" {
				password = prompt("Password: ")
			}
			if email == "" || password == "" {
				return errors.New("email and password are required")
			}

			app := newApp()
			role, err := app.manager.Login(ctx, email, password)
			if err != nil {
				return err
			}

			success("Signed in as %s (%s)", email, role)
			fmt.Println(faintStyle.Render("Home view: " + role.Landing()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newApp()
			app.manager.Start()

			ctx, cancel := cmdContext(cmd)
			defer cancel()
			if err := app.manager.WaitReady(ctx); err != nil {
				return err
			}

			app.manager.Logout()
			success("Signed out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newApp()
			app.manager.Start()

			ctx, cancel := cmdContext(cmd)
			defer cancel()
			if err := app.manager.WaitReady(ctx); err != nil {
				return err
			}

			session := app.manager.Session()
			if !session.Authenticated() {
				notice("Not signed in")
				return nil
			}

			user := session.User
			fmt.Println(heading(user.Name))
			fmt.Printf("  Email:      %s\n", user.Email)
			fmt.Printf("  Department: %s\n", user.Dept)
			fmt.Printf("  Role:       %s\n", user.Role())
			fmt.Printf("  Expires:    %s\n", user.Expires().Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func registerCmd() *cobra.Command {
	var req client.RegisterStudentRequest
	var imagePath string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Enroll a student with a face image",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()

			image, err := loadImage(imagePath)
			if err != nil {
				return err
			}
			req.Image = image

			app := newApp()
			if err := app.api.RegisterStudentFace(ctx, req); err != nil {
				return err
			}

			success("Registered %s (%s)", req.Name, req.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Student name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Student email")
	cmd.Flags().StringVar(&req.Dept, "dept", "", "Department")
	cmd.Flags().StringVar(&req.Password, "password", "", "Account password")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to a face photo (JPEG or PNG)")

	return cmd
}

// loadImage reads a photo file into the data URL form the backend expects
// from the browser's canvas capture.
func loadImage(path string) (string, error) {
	if path == "" {
		return "", errors.New("an --image file is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}

	mime := "image/jpeg"
	if strings.HasSuffix(strings.ToLower(path), ".png") {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}

func prompt(label string) string {
	fmt.Print(label)
	// A read error leaves line holding whatever arrived before it.
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}
