// Seeds the challenge catalog. Safe to run repeatedly: existing titles are
// left untouched.
package main

import (
	"log"

	"github.com/moneefalasali/Shield-Spear/internal/config"
	"github.com/moneefalasali/Shield-Spear/internal/database"
	"github.com/moneefalasali/Shield-Spear/internal/models"
	"github.com/moneefalasali/Shield-Spear/internal/scoring"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()
	db := database.Connect(cfg)
	database.AutoMigrate(db)

	created := 0
	for _, ch := range catalog() {
		var existing models.Challenge
		err := db.Where("title = ?", ch.Title).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("lookup %q: %v", ch.Title, err)
		}
		if err := db.Create(&ch).Error; err != nil {
			log.Fatalf("create %q: %v", ch.Title, err)
		}
		created++
	}
	log.Printf("seeded %d challenges", created)
}

func catalog() []models.Challenge {
	return []models.Challenge{
		{
			Title:         "SQL Injection Attack",
			Description:   "Exploit SQL injection vulnerability to bypass authentication and extract sensitive data from the database.",
			Category:      models.CategoryRed,
			Difficulty:    string(scoring.DifficultyEasy),
			ChallengeType: string(scoring.TypeSQLInjection),
			MaxScore:      100,
			TimeLimit:     300,
			Hints: []string{
				"Try using single quotes to break the SQL syntax",
				"Use OR conditions to create always-true statements",
				"Comment out the rest of the query with -- or #",
			},
			IsActive: true,
		},
		{
			Title:         "SQL Injection Defense",
			Description:   "Implement security measures to prevent SQL injection attacks. Use parameterized queries, input validation, and proper access controls.",
			Category:      models.CategoryBlue,
			Difficulty:    string(scoring.DifficultyEasy),
			ChallengeType: string(scoring.TypeSQLInjection),
			MaxScore:      100,
			TimeLimit:     300,
			Hints: []string{
				"Use parameterized queries or prepared statements",
				"Implement input validation and sanitization",
				"Apply the principle of least privilege to database accounts",
			},
			IsActive: true,
		},
		{
			Title:         "Cross-Site Scripting (XSS) Attack",
			Description:   "Inject malicious JavaScript code to steal cookies, session tokens, or manipulate the webpage.",
			Category:      models.CategoryRed,
			Difficulty:    string(scoring.DifficultyMedium),
			ChallengeType: string(scoring.TypeXSS),
			MaxScore:      100,
			TimeLimit:     300,
			Hints: []string{
				"Try injecting <script> tags",
				"Use event handlers like onerror or onload",
				"Attempt to access document.cookie",
			},
			IsActive: true,
		},
		{
			Title:         "XSS Defense",
			Description:   "Protect your web application from XSS attacks using proper encoding, Content Security Policy, and input validation.",
			Category:      models.CategoryBlue,
			Difficulty:    string(scoring.DifficultyMedium),
			ChallengeType: string(scoring.TypeXSS),
			MaxScore:      100,
			TimeLimit:     300,
			Hints: []string{
				"Implement HTML encoding for all user input",
				"Use Content Security Policy (CSP) headers",
				"Validate and sanitize input on both client and server",
			},
			IsActive: true,
		},
		{
			Title:         "Denial of Service (DoS) Attack",
			Description:   "Simulate a DoS attack to overwhelm server resources and make services unavailable to legitimate users.",
			Category:      models.CategoryRed,
			Difficulty:    string(scoring.DifficultyMedium),
			ChallengeType: string(scoring.TypeDoS),
			MaxScore:      100,
			TimeLimit:     300,
			Hints: []string{
				"Consider SYN flood attacks",
				"Use DNS amplification techniques",
				"Employ distributed attacks (DDoS)",
			},
			IsActive: true,
		},
		{
			Title:         "DoS Mitigation",
			Description:   "Implement defenses against DoS attacks including rate limiting, traffic filtering, and monitoring.",
			Category:      models.CategoryBlue,
			Difficulty:    string(scoring.DifficultyMedium),
			ChallengeType: string(scoring.TypeDoS),
			MaxScore:      100,
			TimeLimit:     300,
			Hints: []string{
				"Implement rate limiting per IP address",
				"Use firewall rules to filter malicious traffic",
				"Consider using CDN services for DDoS protection",
			},
			IsActive: true,
		},
		{
			Title:         "Password Cracking",
			Description:   "Attempt to crack weak passwords using dictionary attacks, brute force, or rainbow tables.",
			Category:      models.CategoryRed,
			Difficulty:    string(scoring.DifficultyEasy),
			ChallengeType: string(scoring.TypePasswordStrength),
			MaxScore:      100,
			TimeLimit:     300,
			Hints: []string{
				"Start with common dictionary words",
				"Try brute force with password cracking tools",
				"Use rainbow tables for hash attacks",
			},
			IsActive: true,
		},
		{
			Title:         "Strong Password Policy",
			Description:   "Create a strong password that meets security requirements: minimum 12 characters, mixed case, numbers, and special characters.",
			Category:      models.CategoryBlue,
			Difficulty:    string(scoring.DifficultyEasy),
			ChallengeType: string(scoring.TypePasswordStrength),
			MaxScore:      100,
			TimeLimit:     300,
			Hints: []string{
				"Use at least 12 characters",
				"Mix uppercase, lowercase, numbers, and symbols",
				"Avoid common words and patterns",
			},
			IsActive: true,
		},
		{
			Title:         "Server Misconfiguration Exploitation",
			Description:   "Identify and exploit server misconfigurations such as exposed admin panels, open ports, and default credentials.",
			Category:      models.CategoryRed,
			Difficulty:    string(scoring.DifficultyHard),
			ChallengeType: string(scoring.TypeServerConfig),
			MaxScore:      100,
			TimeLimit:     300,
			Hints: []string{
				"Scan for open ports and services",
				"Look for exposed admin interfaces",
				"Try default credentials",
			},
			IsActive: true,
		},
		{
			Title:         "Server Hardening",
			Description:   "Secure the server by closing unnecessary ports, updating software, enabling authentication, and implementing encryption.",
			Category:      models.CategoryBlue,
			Difficulty:    string(scoring.DifficultyHard),
			ChallengeType: string(scoring.TypeServerConfig),
			MaxScore:      100,
			TimeLimit:     300,
			Hints: []string{
				"Close all unnecessary open ports",
				"Secure admin interfaces with strong authentication",
				"Enable HTTPS/TLS encryption",
				"Keep software updated with latest patches",
			},
			IsActive: true,
		},
		{
			Title:         "CSRF Exploitation",
			Description:   "Forge cross-site requests that ride an authenticated victim's session to perform unwanted actions.",
			Category:      models.CategoryRed,
			Difficulty:    string(scoring.DifficultyMedium),
			ChallengeType: string(scoring.TypeCSRF),
			MaxScore:      100,
			TimeLimit:     300,
			Hints: []string{
				"Craft a hidden auto-submitting form",
				"Target state-changing endpoints without CSRF tokens",
				"Abuse GET endpoints that mutate state",
			},
			IsActive: true,
		},
		{
			Title:         "Command Injection Attack",
			Description:   "Break out of an application's shell command construction to execute arbitrary system commands.",
			Category:      models.CategoryRed,
			Difficulty:    string(scoring.DifficultyHard),
			ChallengeType: string(scoring.TypeCommandInjection),
			MaxScore:      100,
			TimeLimit:     300,
			Hints: []string{
				"Chain commands with ; or &&",
				"Use command substitution like $(...)",
				"Probe blind injection with time delays",
			},
			IsActive: true,
		},
		{
			Title:         "Co-op Security Challenge",
			Description:   "Team up with a friend to attack or defend together in real-time. One player acts as attacker, the other as defender.",
			Category:      models.CategoryCoop,
			Difficulty:    string(scoring.DifficultyMedium),
			ChallengeType: string(scoring.TypeSQLInjection),
			MaxScore:      150,
			TimeLimit:     600,
			Hints: []string{
				"Coordinate with your partner",
				"Use the live event log to track actions",
				"Adapt your strategy based on opponent moves",
			},
			IsActive: true,
		},
	}
}
