/*
Copyright 2025 Kurl Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package kurl

import "slices"

const (
	// MaxValidPort is the largest port number a URL may carry.
	MaxValidPort = 0xFFFE
	// InvalidPort is reported by Port when the written port is out of range.
	InvalidPort = 0xFFFF
)

// blockedPorts lists ports of services that browsers refuse to contact over
// HTTP, sorted for binary search.
var blockedPorts = []uint16{
	1,    // tcpmux
	7,    // echo
	9,    // discard
	11,   // systat
	13,   // daytime
	15,   // netstat
	17,   // qotd
	19,   // chargen
	20,   // FTP-data
	21,   // FTP-control
	22,   // SSH
	23,   // telnet
	25,   // SMTP
	37,   // time
	42,   // name
	43,   // nicname
	53,   // domain
	77,   // priv-rjs
	79,   // finger
	87,   // ttylink
	95,   // supdup
	101,  // hostname
	102,  // iso-tsap
	103,  // gppitnp
	104,  // acr-nema
	109,  // POP2
	110,  // POP3
	111,  // sunrpc
	113,  // auth
	115,  // SFTP
	117,  // uucp-path
	119,  // nntp
	123,  // NTP
	135,  // loc-srv / epmap
	139,  // netbios
	143,  // IMAP2
	179,  // BGP
	389,  // LDAP
	465,  // SMTP+SSL
	512,  // print / exec
	513,  // login
	514,  // shell
	515,  // printer
	526,  // tempo
	530,  // courier
	531,  // Chat
	532,  // netnews
	540,  // UUCP
	556,  // remotefs
	563,  // NNTP+SSL
	587,  // ESMTP
	601,  // syslog-conn
	636,  // LDAP+SSL
	993,  // IMAP+SSL
	995,  // POP3+SSL
	2049, // NFS
	3659, // apple-sasl
	4045, // lockd
	6000, // X11
	6665, // Alternate IRC
	6666, // Alternate IRC
	6667, // Standard IRC
	6668, // Alternate IRC
	6669, // Alternate IRC
	InvalidPort,
}

// PortIsAllowed reports whether a network request may be sent to u's port.
// URLs without a port, file URLs, and FTP URLs on ports 21 and 22 are always
// allowed.
func PortIsAllowed(u URL) bool {
	return PortIsAllowedWith(u, nil)
}

// PortIsAllowedWith is PortIsAllowed with extra ports added to the blocklist.
func PortIsAllowedWith(u URL, extra []uint16) bool {
	port := u.Port()
	if port == 0 {
		return true
	}
	if _, blocked := slices.BinarySearch(blockedPorts, port); !blocked && !slices.Contains(extra, port) {
		return true
	}

	if (port == 21 || port == 22) && u.ProtocolIs("ftp") {
		return true
	}
	return u.ProtocolIs("file")
}

// IsBlockedPort reports whether port is on the built-in blocklist.
func IsBlockedPort(port uint16) bool {
	_, found := slices.BinarySearch(blockedPorts, port)
	return found
}
