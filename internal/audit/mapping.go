package audit

import "strings"

// ActionResource holds action and resource derived from a gRPC full method name.
type ActionResource struct {
	Action   string
	Resource string
}

// verbs are the method-name prefixes recognised as actions, longest first where they overlap.
var verbs = []string{"Get", "List", "Create", "Update", "Submit", "Export", "Sync", "Send", "Verify", "Cancel", "Login", "Logout", "Health"}

// ParseFullMethod returns action and resource for a gRPC full method (e.g. /portal.v1.PortalService/CreateReport).
// Action is the lowercase verb prefix of the method; Resource is the remaining noun, singular and
// lowerCamel (CreateReport -> create/report, ListAuditLogs -> list/auditLog). Methods that are only a
// verb (Login, Logout) use the service name as resource.
func ParseFullMethod(fullMethod string) ActionResource {
	// fullMethod format: /package.v1.ServiceName/MethodName
	slash := strings.LastIndex(fullMethod, "/")
	if slash < 0 {
		return ActionResource{Action: "unknown", Resource: "unknown"}
	}
	method := fullMethod[slash+1:]
	beforeSlash := fullMethod[:slash]
	service := "unknown"
	if dot := strings.LastIndex(beforeSlash, "."); dot >= 0 {
		service = serviceToResource(beforeSlash[dot+1:])
	}
	for _, v := range verbs {
		if !strings.HasPrefix(method, v) {
			continue
		}
		noun := method[len(v):]
		if noun == "" || noun[0] < 'A' || noun[0] > 'Z' {
			if noun != "" {
				continue
			}
			return ActionResource{Action: strings.ToLower(v), Resource: service}
		}
		return ActionResource{Action: strings.ToLower(v), Resource: nounToResource(noun)}
	}
	return ActionResource{Action: strings.ToLower(method), Resource: service}
}

func serviceToResource(serviceName string) string {
	// PortalService -> portal
	s := strings.TrimSuffix(serviceName, "Service")
	if s == "" {
		return "unknown"
	}
	return strings.ToLower(s[0:1]) + s[1:]
}

func nounToResource(noun string) string {
	noun = strings.TrimSuffix(noun, "s")
	return strings.ToLower(noun[0:1]) + noun[1:]
}
