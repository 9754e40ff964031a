package endpoint

import (
	"net/http"
	"strconv"
)

// Operation names one remote call.
type Operation int

const (
	Find Operation = iota + 1
	FindOne
	InsertOne
	UpdateOne
	DeleteOne
	GetObjectRevisions
	SearchObjects
	GetMedia
	GetMediaObject
	UploadMedia
	DeleteMedia
	GetBucket
	UpdateBucketSettings
	GetUsers
	GetUser
	AddUser
	DeleteUser
	GetWebhooks
	AddWebhook
	DeleteWebhook
	GenerateText
	GenerateImage
)

// host selects the address space an operation lives in.
type host int

const (
	primaryHost host = iota
	workersHost
)

// param is a bit set of the optional query parameters an operation accepts.
type param uint8

const (
	paramQuery param = 1 << iota
	paramProps
	paramLimit
	paramSkip
	paramSort
	paramStatus
	paramDepth
)

// capability is one row of the operation table.
type capability struct {
	name   string
	method string
	// path is relative to /v3/buckets/{bucket}; "{id}" is replaced by the
	// escaped identifier.
	path             string
	host             host
	requiresID       bool
	requiresWriteKey bool
	readKey          bool
	params           param
}

//nolint:gochecknoglobals // static lookup table
var capabilities = map[Operation]capability{
	Find: {
		name: "find", method: http.MethodGet, path: "/objects", readKey: true,
		params: paramQuery | paramProps | paramLimit | paramSkip | paramSort | paramStatus | paramDepth,
	},
	FindOne: {
		name: "findOne", method: http.MethodGet, path: "/objects/{id}", requiresID: true, readKey: true,
		params: paramProps | paramStatus | paramDepth,
	},
	InsertOne: {
		name: "insertOne", method: http.MethodPost, path: "/objects", requiresWriteKey: true,
	},
	UpdateOne: {
		name: "updateOne", method: http.MethodPatch, path: "/objects/{id}", requiresID: true, requiresWriteKey: true,
	},
	DeleteOne: {
		name: "deleteOne", method: http.MethodDelete, path: "/objects/{id}", requiresID: true, requiresWriteKey: true,
	},
	GetObjectRevisions: {
		name: "getObjectRevisions", method: http.MethodGet, path: "/objects/{id}/revisions", requiresID: true, readKey: true,
	},
	SearchObjects: {
		name: "searchObjects", method: http.MethodPost, path: "/objects/search", readKey: true,
	},
	GetMedia: {
		name: "getMedia", method: http.MethodGet, path: "/media", readKey: true,
		params: paramProps | paramLimit | paramSkip,
	},
	GetMediaObject: {
		name: "getMediaObject", method: http.MethodGet, path: "/media/{id}", requiresID: true, readKey: true,
	},
	UploadMedia: {
		name: "uploadMedia", method: http.MethodPost, path: "/media/insert-one", host: workersHost, requiresWriteKey: true,
	},
	DeleteMedia: {
		name: "deleteMedia", method: http.MethodDelete, path: "/media/{id}", requiresID: true, requiresWriteKey: true,
	},
	GetBucket: {
		name: "getBucket", method: http.MethodGet, path: "", readKey: true,
	},
	UpdateBucketSettings: {
		name: "updateBucketSettings", method: http.MethodPatch, path: "/settings", requiresWriteKey: true,
	},
	GetUsers: {
		name: "getUsers", method: http.MethodGet, path: "/users", readKey: true,
	},
	GetUser: {
		name: "getUser", method: http.MethodGet, path: "/users/{id}", requiresID: true, readKey: true,
	},
	AddUser: {
		name: "addUser", method: http.MethodPost, path: "/users", requiresWriteKey: true,
	},
	DeleteUser: {
		name: "deleteUser", method: http.MethodDelete, path: "/users/{id}", requiresID: true, requiresWriteKey: true,
	},
	GetWebhooks: {
		name: "getWebhooks", method: http.MethodGet, path: "/webhooks", readKey: true,
	},
	AddWebhook: {
		name: "addWebhook", method: http.MethodPost, path: "/webhooks", requiresWriteKey: true,
	},
	DeleteWebhook: {
		name: "deleteWebhook", method: http.MethodDelete, path: "/webhooks/{id}", requiresID: true, requiresWriteKey: true,
	},
	GenerateText: {
		name: "generateText", method: http.MethodPost, path: "/ai/text", host: workersHost, requiresWriteKey: true,
	},
	GenerateImage: {
		name: "generateImage", method: http.MethodPost, path: "/ai/image", host: workersHost, requiresWriteKey: true,
	},
}

// String returns the operation name used in logs and metrics.
func (o Operation) String() string {
	if c, ok := capabilities[o]; ok {
		return c.name
	}

	return "operation(" + strconv.Itoa(int(o)) + ")"
}

// RequiresWriteKey reports whether o is a mutation that must carry the
// write key.
func (o Operation) RequiresWriteKey() bool {
	return capabilities[o].requiresWriteKey
}

// RequiresID reports whether o addresses a single resource.
func (o Operation) RequiresID() bool {
	return capabilities[o].requiresID
}

// Operations lists every known operation in declaration order.
func Operations() []Operation {
	ops := make([]Operation, 0, len(capabilities))
	for op := Find; op <= GenerateImage; op++ {
		ops = append(ops, op)
	}

	return ops
}
