package bot

import "github.com/moneefalasali/Shield-Spear/internal/scoring"

// Action is one canned move from a bot script.
type Action struct {
	Tag         string `json:"action"`
	Description string `json:"description"`
	Success     bool   `json:"success"`
}

// scripts holds the fixed ordered move list per (challenge type, role).
// Once a bot exhausts its script it repeats the final move.
var scripts = map[scoring.ChallengeType]map[scoring.Role][]Action{
	scoring.TypeSQLInjection: {
		scoring.RoleAttacker: {
			{Tag: "probe", Description: "Testing for SQL injection vulnerability with ' OR '1'='1"},
			{Tag: "enumerate", Description: "Attempting UNION SELECT to enumerate columns"},
			{Tag: "extract", Description: "Extracting data with UNION SELECT username, password FROM users"},
			{Tag: "exploit", Description: "Attempting to bypass authentication"},
		},
		scoring.RoleDefender: {
			{Tag: "detect", Description: "Scanning for suspicious SQL patterns in input"},
			{Tag: "sanitize", Description: "Applying input sanitization and parameterized queries"},
			{Tag: "block", Description: "Blocking malicious SQL injection attempt"},
			{Tag: "log", Description: "Logging attack attempt for analysis"},
		},
	},
	scoring.TypeXSS: {
		scoring.RoleAttacker: {
			{Tag: "probe", Description: "Testing for XSS vulnerability with <script>alert('test')</script>"},
			{Tag: "craft", Description: "Crafting payload: <img src=x onerror=alert(document.cookie)>"},
			{Tag: "inject", Description: "Injecting XSS payload into input field"},
			{Tag: "steal", Description: "Attempting to steal session cookies"},
		},
		scoring.RoleDefender: {
			{Tag: "detect", Description: "Scanning for XSS patterns in user input"},
			{Tag: "encode", Description: "HTML encoding user input to prevent execution"},
			{Tag: "validate", Description: "Validating input against whitelist"},
			{Tag: "protect", Description: "Enabling Content Security Policy (CSP)"},
		},
	},
	scoring.TypeDoS: {
		scoring.RoleAttacker: {
			{Tag: "scan", Description: "Scanning target server for vulnerabilities"},
			{Tag: "flood", Description: "Initiating SYN flood attack"},
			{Tag: "amplify", Description: "Performing DNS amplification attack"},
			{Tag: "overwhelm", Description: "Overwhelming server with requests"},
		},
		scoring.RoleDefender: {
			{Tag: "monitor", Description: "Monitoring network traffic for anomalies"},
			{Tag: "rate_limit", Description: "Applying rate limiting to suspicious IPs"},
			{Tag: "filter", Description: "Filtering malicious traffic with firewall rules"},
			{Tag: "mitigate", Description: "Activating DDoS mitigation service"},
		},
	},
	scoring.TypePasswordStrength: {
		scoring.RoleAttacker: {
			{Tag: "dictionary", Description: "Attempting dictionary attack with common passwords"},
			{Tag: "brute_force", Description: "Running brute force attack on password"},
			{Tag: "rainbow", Description: "Using rainbow tables to crack hash"},
			{Tag: "crack", Description: "Successfully cracking weak password"},
		},
		scoring.RoleDefender: {
			{Tag: "analyze", Description: "Analyzing password strength requirements"},
			{Tag: "enforce", Description: "Enforcing strong password policy"},
			{Tag: "hash", Description: "Implementing bcrypt hashing with salt"},
			{Tag: "protect", Description: "Adding account lockout after failed attempts"},
		},
	},
	scoring.TypeServerConfig: {
		scoring.RoleAttacker: {
			{Tag: "enumerate", Description: "Enumerating server services and versions"},
			{Tag: "scan", Description: "Scanning for open ports and misconfigurations"},
			{Tag: "exploit", Description: "Exploiting exposed admin panel"},
			{Tag: "access", Description: "Gaining unauthorized access via misconfiguration"},
		},
		scoring.RoleDefender: {
			{Tag: "audit", Description: "Auditing server configuration"},
			{Tag: "harden", Description: "Hardening server security settings"},
			{Tag: "close", Description: "Closing unnecessary open ports"},
			{Tag: "secure", Description: "Securing admin interfaces with authentication"},
		},
	},
	scoring.TypeCSRF: {
		scoring.RoleAttacker: {
			{Tag: "recon", Description: "Inspecting state-changing forms for missing CSRF tokens"},
			{Tag: "forge", Description: "Forging a cross-site request against the transfer endpoint"},
			{Tag: "lure", Description: "Embedding forged request in an auto-submitting page"},
			{Tag: "hijack", Description: "Riding the victim's session to change account settings"},
		},
		scoring.RoleDefender: {
			{Tag: "token", Description: "Issuing per-session CSRF tokens on all forms"},
			{Tag: "verify", Description: "Verifying token and Origin header on state changes"},
			{Tag: "samesite", Description: "Setting SameSite=Strict on session cookies"},
			{Tag: "reject", Description: "Rejecting forged cross-site request"},
		},
	},
	scoring.TypeCommandInjection: {
		scoring.RoleAttacker: {
			{Tag: "probe", Description: "Testing input with ; ls -la to detect shell execution"},
			{Tag: "chain", Description: "Chaining commands with && cat /etc/passwd"},
			{Tag: "escalate", Description: "Spawning reverse shell via injected command"},
			{Tag: "exfiltrate", Description: "Exfiltrating files through injected curl command"},
		},
		scoring.RoleDefender: {
			{Tag: "detect", Description: "Scanning input for shell metacharacters"},
			{Tag: "sanitize", Description: "Escaping input and avoiding shell interpolation"},
			{Tag: "restrict", Description: "Running services under a restricted account"},
			{Tag: "block", Description: "Blocking command injection attempt"},
		},
	},
}

var hintResponses = []string{
	"Analyzing your move...",
	"Adapting strategy...",
	"Preparing countermeasure...",
	"Interesting approach...",
}
