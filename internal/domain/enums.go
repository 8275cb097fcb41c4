package domain

// ImageFormat is an accepted image encoding.
type ImageFormat string

const (
	ImageFormatJPEG ImageFormat = "jpeg"
	ImageFormatPNG  ImageFormat = "png"
	ImageFormatWebP ImageFormat = "webp"
	ImageFormatGIF  ImageFormat = "gif"
)

// AllowedMediaTypes maps declared MIME types to ImageFormat.
// "image/jpg" is not registered with IANA but browsers and mobile clients still send it.
var AllowedMediaTypes = map[string]ImageFormat{
	"image/jpeg": ImageFormatJPEG,
	"image/jpg":  ImageFormatJPEG,
	"image/png":  ImageFormatPNG,
	"image/webp": ImageFormatWebP,
	"image/gif":  ImageFormatGIF,
}

// AllowedExtensions maps lowercased file extensions (with dot) to ImageFormat.
var AllowedExtensions = map[string]ImageFormat{
	".jpg":  ImageFormatJPEG,
	".jpeg": ImageFormatJPEG,
	".png":  ImageFormatPNG,
	".webp": ImageFormatWebP,
	".gif":  ImageFormatGIF,
}

// Category is the bucket an image is stored under, e.g. "profiles", "pets" or "posts".
type Category string

const (
	CategoryProfiles Category = "profiles"
	CategoryPets     Category = "pets"
	CategoryPosts    Category = "posts"
)

// DefaultCategories are provisioned when the category allow-list is empty.
var DefaultCategories = []Category{CategoryProfiles, CategoryPets, CategoryPosts}

// Multipart field names used by the upload routes.
const (
	FieldImage  = "image"
	FieldImages = "images"
)
