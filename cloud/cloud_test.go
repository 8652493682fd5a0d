// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import "testing"

func TestParseUserData(t *testing.T) {
	data, err := parseUserData("#!/bin/bash\nREGION=\"us-east-1\"\r\n STAGE = prod\nOTHER=1\n")
	if err != nil {
		t.Fatal(err)
	}
	if data.Region != "us-east-1" || data.Stage != "prod" {
		t.Errorf("unexpected user data %+v", data)
	}

	for _, userData := range []string{"", "REGION=us-east-1", "STAGE=prod", "REGION=\nSTAGE=prod"} {
		if _, err := parseUserData(userData); err == nil {
			t.Errorf("%q: expected error", userData)
		}
	}
}

func TestCloud_String(t *testing.T) {
	var offline *Cloud
	if s := offline.String(); s != "[offline]" {
		t.Errorf("expected [offline], got %s", s)
	}
	if s := (&Cloud{region: "us-east-1", stage: "prod"}).String(); s != "[us-east-1 prod]" {
		t.Errorf("unexpected %s", s)
	}
}
