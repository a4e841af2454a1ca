package patterns

import "time"

// DefaultTimeout is the default timeout for upstream HTTP requests
const DefaultTimeout = 3 * time.Second

// UploadTimeout is a longer timeout for multipart image uploads
const UploadTimeout = 15 * time.Second
