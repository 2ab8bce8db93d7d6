package services

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestBuildReceiptMessage(t *testing.T) {
	attachment := []byte("%PDF-1.4 fake receipt content")
	msg := string(buildReceiptMessage(
		"\"St. Joseph Church, Belman\" <parish@example.com>",
		"jane@example.com",
		"Donation Receipt",
		"Attached is your donation receipt.",
		"receipt.pdf",
		attachment,
	))

	for _, want := range []string{
		"From: \"St. Joseph Church, Belman\" <parish@example.com>\r\n",
		"To: jane@example.com\r\n",
		"Subject: Donation Receipt\r\n",
		"MIME-Version: 1.0\r\n",
		"Content-Type: multipart/mixed;",
		"Content-Disposition: attachment; filename=\"receipt.pdf\"\r\n",
		"Content-Transfer-Encoding: base64\r\n",
		"Attached is your donation receipt.",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q", want)
		}
	}

	encoded := base64.StdEncoding.EncodeToString(attachment)
	if !strings.Contains(strings.ReplaceAll(msg, "\r\n", ""), encoded) {
		t.Error("message does not carry the base64 encoded attachment")
	}

	if !strings.HasSuffix(msg, "--\r\n") {
		t.Error("message is not terminated by a closing boundary")
	}
}

func TestBuildReceiptMessageWrapsLongAttachments(t *testing.T) {
	attachment := make([]byte, 600)
	for i := range attachment {
		attachment[i] = byte(i % 251)
	}

	msg := string(buildReceiptMessage("a@example.com", "b@example.com", "s", "body", "file.bin", attachment))

	inBody := false
	for _, line := range strings.Split(msg, "\r\n") {
		if strings.Contains(line, "base64") {
			inBody = true
			continue
		}
		if inBody && len(line) > 76 {
			t.Fatalf("base64 line longer than 76 chars: %d", len(line))
		}
	}
}
