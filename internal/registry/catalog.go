package registry

import "github.com/khanhnv2901/seca-host/internal/domain/check"

// catalog is the built-in check table. Its order is the canonical order of
// every scan and report; add checks by extending it.
var catalog = []check.Definition{
	// OS & firmware
	{
		ID:          "os_latest_version",
		Name:        "Latest macOS Version",
		Category:    check.CategoryOSHardening,
		Description: "Ensures system is running the latest macOS version",
		Hint:        "Running the latest macOS version ensures you have the latest security patches and bug fixes. Always keep your system up-to-date.",
		Severity:    5,
		Enforceable: false,
		Remediation: "Software Update → Check Now",
		APIs:        []string{"system_profiler"},
	},
	{
		ID:          "auto_security_updates",
		Name:        "Automatic Security Updates",
		Category:    check.CategoryOSHardening,
		Description: "Automatic security updates are enabled",
		Hint:        "Automatic security updates allow Apple to patch security vulnerabilities immediately without requiring manual intervention. This is critical for maintaining security.",
		Severity:    5,
		Enforceable: true,
		Remediation: "System Settings → General → Software Update → Automatic Updates",
		APIs:        []string{"defaults"},
	},
	{
		ID:          "firmware_password",
		Name:        "Firmware Password",
		Category:    check.CategoryOSHardening,
		Description: "Firmware password is enabled (Intel Macs)",
		Hint:        "Firmware passwords protect against unauthorized access to Recovery Mode and prevent unauthorized operating system installation on Intel Macs.",
		Severity:    4,
		Enforceable: false,
		Remediation: "Restart → Hold Cmd+R → Utilities → Firmware Password Utility",
		APIs:        []string{"firmwarepasswd"},
	},
	{
		ID:          "secure_boot",
		Name:        "Secure Boot Enabled",
		Category:    check.CategoryOSHardening,
		Description: "Secure Boot set to Full Security (Apple Silicon)",
		Hint:        "Secure Boot verifies that only trusted software can run before the operating system loads, protecting your Mac against bootkits and firmware-level attacks.",
		Severity:    4,
		Enforceable: false,
		Remediation: "Restart → Hold Power Button → Startup Security Policy",
		APIs:        []string{"system_profiler"},
	},
	{
		ID:          "sip_enabled",
		Name:        "System Integrity Protection",
		Category:    check.CategoryOSHardening,
		Description: "System Integrity Protection (SIP) is enabled",
		Hint:        "System Integrity Protection prevents even administrator-level processes from modifying critical system files. This is essential for OS security.",
		Severity:    5,
		Enforceable: false,
		Remediation: "Restart → Hold Cmd+R → Utilities → Terminal → csrutil enable",
		APIs:        []string{"csrutil"},
	},
	{
		ID:          "signed_system_volume",
		Name:        "Signed System Volume Intact",
		Category:    check.CategoryOSHardening,
		Description: "System volume is cryptographically signed",
		Hint:        "Code signing ensures your system volume hasn't been tampered with or infected by malware. This cryptographic signature proves OS integrity.",
		Severity:    5,
		Enforceable: false,
		Remediation: "Restore macOS or contact Apple Support",
		APIs:        []string{"system_profiler"},
	},

	// Authentication
	{
		ID:          "password_required_immediately",
		Name:        "Password Required After Sleep",
		Category:    check.CategoryAuthentication,
		Description: "Password required immediately after sleep/screen saver",
		Hint:        "Requiring a password immediately after sleep prevents unauthorized access if your Mac is left unattended. Don't allow login delays that create security gaps.",
		Severity:    4,
		Enforceable: true,
		Remediation: "System Settings → Lock Screen → Require password immediately after sleep",
		APIs:        []string{"defaults"},
	},
	{
		ID:          "strong_password_policy",
		Name:        "Strong Password Policy",
		Category:    check.CategoryAuthentication,
		Description: "Strong password policy enforced",
		Hint:        "Strong passwords with complexity requirements are critical for preventing brute-force and dictionary attacks on your user accounts.",
		Severity:    4,
		Enforceable: true,
		Remediation: "Use System Settings → Users & Groups policies",
		APIs:        []string{"dscl"},
	},
	{
		ID:          "no_shared_admin",
		Name:        "No Shared Admin Accounts",
		Category:    check.CategoryAuthentication,
		Description: "No shared administrator accounts",
		Hint:        "Shared admin accounts make it impossible to audit who made what changes. Each user should have their own unique administrator account for accountability.",
		Severity:    4,
		Enforceable: true,
		Remediation: "System Settings → Users & Groups → Ensure each admin is unique",
		APIs:        []string{"dscl"},
	},
	{
		ID:          "guest_account_disabled",
		Name:        "Guest Account Disabled",
		Category:    check.CategoryAuthentication,
		Description: "Guest account is disabled",
		Hint:        "Disabled guest accounts prevent unauthorized temporary access to your system by external users. This eliminates an unnecessary attack vector.",
		Severity:    3,
		Enforceable: true,
		Remediation: "System Settings → Users & Groups → Guest Account → Uncheck",
		APIs:        []string{"defaults"},
	},
	{
		ID:          "touch_id_enabled",
		Name:        "Touch ID Enabled",
		Category:    check.CategoryAuthentication,
		Description: "Touch ID is enabled (where available)",
		Hint:        "Touch ID provides convenient yet cryptographically secure authentication without exposing passwords. Enable it for faster and safer login.",
		Severity:    2,
		Enforceable: false,
		Remediation: "System Settings → Touch ID & Passcode",
		APIs:        []string{"LocalAuthentication"},
	},

	// Disk
	{
		ID:          "filevault_enabled",
		Name:        "FileVault Enabled",
		Category:    check.CategoryDiskProtection,
		Description: "Full disk encryption via FileVault",
		Hint:        "FileVault encrypts your entire drive, protecting data even if your Mac is physically stolen. This is critical for sensitive information.",
		Severity:    5,
		Enforceable: true,
		Remediation: "System Settings → Privacy & Security → FileVault → Turn On",
		APIs:        []string{"fdesetup"},
	},
	{
		ID:          "recovery_key_escrowed",
		Name:        "Recovery Key Escrowed",
		Category:    check.CategoryDiskProtection,
		Description: "FileVault recovery key escrowed with MDM",
		Hint:        "Escrow ensures you can still recover your encrypted data if you forget your password. MDM escrow provides organizational recovery capability.",
		Severity:    4,
		Enforceable: true,
		Remediation: "Configure MDM to escrow FileVault keys",
		APIs:        []string{"MDM"},
	},
	{
		ID:          "external_drives_encrypted",
		Name:        "External Drives Encrypted",
		Category:    check.CategoryDiskProtection,
		Description: "External drives encrypted or access restricted",
		Hint:        "External drives can be easily stolen or shared with others. Encryption protects sensitive data on removable media and prevents unauthorized access.",
		Severity:    3,
		Enforceable: true,
		Remediation: "Right-click external drive → Encrypt",
		APIs:        []string{"diskutil"},
	},

	// Applications
	{
		ID:          "gatekeeper_enabled",
		Name:        "Gatekeeper Enabled",
		Category:    check.CategoryApplicationSecurity,
		Description: "Gatekeeper is enabled",
		Hint:        "Gatekeeper prevents execution of unsigned and unnotarized applications, blocking malware and other threats.",
		Severity:    4,
		Enforceable: false,
		Remediation: "System Settings → Privacy & Security → Allow apps downloaded from",
		APIs:        []string{"spctl"},
	},
	{
		ID:          "notarized_apps_only",
		Name:        "Notarized Apps Only",
		Category:    check.CategoryApplicationSecurity,
		Description: "Only notarized apps are allowed",
		Hint:        "Notarized apps have been scanned by Apple for malware and security issues. Requiring notarization significantly reduces the risk of installing compromised software.",
		Severity:    4,
		Enforceable: true,
		Remediation: "Enable 'Require notarization' via MDM",
		APIs:        []string{"spctl"},
	},
	{
		ID:          "xprotect_enabled",
		Name:        "XProtect Enabled",
		Category:    check.CategoryApplicationSecurity,
		Description: "XProtect malware protection enabled",
		Hint:        "XProtect is macOS's built-in malware scanning engine that automatically checks downloaded files and applications for known threats.",
		Severity:    4,
		Enforceable: false,
		Remediation: "XProtect cannot be disabled on modern macOS",
		APIs:        []string{"system_profiler"},
	},
	{
		ID:          "mrt_enabled",
		Name:        "MRT Enabled",
		Category:    check.CategoryApplicationSecurity,
		Description: "Malware Removal Tool enabled",
		Hint:        "The Malware Removal Tool automatically scans and removes known malware if detected on your system, providing an additional layer of protection.",
		Severity:    3,
		Enforceable: false,
		Remediation: "MRT runs automatically; cannot be disabled",
		APIs:        []string{"system_profiler"},
	},

	// TCC
	{
		ID:          "tcc_least_privilege",
		Name:        "Least Privilege TCC",
		Category:    check.CategoryPrivacy,
		Description: "Apps have minimum required permissions",
		Hint:        "Least privilege means applications only have access to what they actually need to function. This reduces risk if an app becomes compromised.",
		Severity:    3,
		Enforceable: true,
		Remediation: "System Settings → Privacy & Security → Review app permissions",
		APIs:        []string{"TCC"},
	},
	{
		ID:          "fda_monitored",
		Name:        "Full Disk Access Monitored",
		Category:    check.CategoryPrivacy,
		Description: "Full Disk Access permissions are monitored",
		Hint:        "Full Disk Access is one of the most dangerous permissions as it gives apps complete access to all files. Only grant this to trusted applications.",
		Severity:    4,
		Enforceable: true,
		Remediation: "System Settings → Privacy & Security → Full Disk Access → Review apps",
		APIs:        []string{"TCC"},
	},
	{
		ID:          "camera_mic_protected",
		Name:        "Camera & Microphone Protected",
		Category:    check.CategoryPrivacy,
		Description: "Camera and microphone access is restricted",
		Hint:        "Restricting camera and microphone access prevents unauthorized surveillance. Regularly review which apps have these permissions.",
		Severity:    4,
		Enforceable: true,
		Remediation: "System Settings → Privacy & Security → Camera/Microphone",
		APIs:        []string{"TCC"},
	},

	// Network
	{
		ID:          "firewall_enabled",
		Name:        "Firewall Enabled",
		Category:    check.CategoryNetworkSecurity,
		Description: "macOS firewall is enabled",
		Hint:        "The macOS firewall blocks incoming connections from untrusted sources, protecting your system from network attacks.",
		Severity:    4,
		Enforceable: true,
		Remediation: "System Settings → Network → Firewall → Turn On Firewall",
		APIs:        []string{"defaults"},
	},
	{
		ID:          "stealth_mode_enabled",
		Name:        "Stealth Mode Enabled",
		Category:    check.CategoryNetworkSecurity,
		Description: "Stealth mode enabled",
		Hint:        "Stealth mode prevents your Mac from responding to ping requests and port scans, making it less visible to attackers on the network.",
		Severity:    3,
		Enforceable: true,
		Remediation: "System Settings → Network → Firewall Options → Enable Stealth Mode",
		APIs:        []string{"defaults"},
	},
	{
		ID:          "bluetooth_restricted",
		Name:        "Bluetooth Restricted",
		Category:    check.CategoryNetworkSecurity,
		Description: "Bluetooth discoverability restricted",
		Hint:        "Disabling Bluetooth discoverability prevents nearby attackers from discovering and attempting to pair with your device.",
		Severity:    2,
		Enforceable: true,
		Remediation: "System Settings → Bluetooth → Discoverable: Off",
		APIs:        []string{"defaults"},
	},
	{
		ID:          "dns_secure",
		Name:        "DNS Security",
		Category:    check.CategoryNetworkSecurity,
		Description: "DNS uses DoH or filtered DNS",
		Hint:        "DNS over HTTPS (DoH) and encrypted DNS prevent ISPs and eavesdroppers from seeing which websites you visit, protecting your privacy.",
		Severity:    3,
		Enforceable: true,
		Remediation: "System Settings → Network → DNS → Add secure DNS provider",
		APIs:        []string{"scutil"},
	},

	// Malware
	{
		ID:          "xprotect_signatures",
		Name:        "XProtect Signatures Updated",
		Category:    check.CategoryMalwareProtection,
		Description: "Known malware signatures are current",
		Hint:        "Up-to-date XProtect signatures ensure the latest known malware variants are detected and blocked by the system.",
		Severity:    4,
		Enforceable: false,
		Remediation: "Automatic updates via System Settings",
		APIs:        []string{"system_profiler"},
	},
	{
		ID:          "persistence_monitored",
		Name:        "Persistence Mechanisms Monitored",
		Category:    check.CategoryMalwareProtection,
		Description: "LaunchAgents, LaunchDaemons, and cron jobs monitored",
		Hint:        "Monitoring startup mechanisms helps detect malware attempting to survive system reboots and maintain persistent access.",
		Severity:    3,
		Enforceable: true,
		Remediation: "Use MDM for monitoring",
		APIs:        []string{"EndpointSecurity"},
	},

	// Integrity
	{
		ID:          "system_volume_intact",
		Name:        "System Volume Integrity",
		Category:    check.CategorySystemIntegrity,
		Description: "System volume has not been modified",
		Hint:        "An intact system volume ensures your operating system hasn't been modified by malware or attackers. This is fundamental to system security.",
		Severity:    5,
		Enforceable: false,
		Remediation: "Restore macOS if compromised",
		APIs:        []string{"system_profiler"},
	},
	{
		ID:          "mdm_protected",
		Name:        "MDM Profile Protected",
		Category:    check.CategorySystemIntegrity,
		Description: "MDM profile removal is protected",
		Hint:        "Protected MDM profiles prevent users from unenrolling from mobile device management, ensuring compliance policies remain enforced.",
		Severity:    4,
		Enforceable: true,
		Remediation: "Configure MDM with removal protection",
		APIs:        []string{"MDM"},
	},

	// Logging
	{
		ID:          "unified_logging_enabled",
		Name:        "Unified Logging Enabled",
		Category:    check.CategoryLoggingAuditing,
		Description: "Unified logging captures security events",
		Hint:        "Unified logging creates detailed audit trails of system events for forensic analysis, compliance investigations, and security incident response.",
		Severity:    3,
		Enforceable: false,
		Remediation: "Cannot be disabled; configure log retention",
		APIs:        []string{"os_log"},
	},
	{
		ID:          "audit_enabled",
		Name:        "Audit Subsystem Enabled",
		Category:    check.CategoryLoggingAuditing,
		Description: "Audit subsystem logs security-relevant events",
		Hint:        "The audit subsystem records security-relevant events for compliance, incident investigation, and detection of suspicious activity on your system.",
		Severity:    3,
		Enforceable: true,
		Remediation: "Configure via audit_control",
		APIs:        []string{"auditd"},
	},
}

// DefaultCatalog returns a copy of the built-in check table
func DefaultCatalog() []check.Definition {
	out := make([]check.Definition, len(catalog))
	for i, def := range catalog {
		out[i] = def.Clone()
	}
	return out
}
