package handle

import (
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/getsentry/raven-go"
	"github.com/gin-gonic/gin"
	"github.com/olebedev/config"
	"github.com/op/go-logging"
	"github.com/satori/go.uuid"
	"github.com/tryanzu/storyfeed/deps"
	"github.com/tryanzu/storyfeed/modules/exceptions"
	"gopkg.in/mgo.v2/bson"
)

var log = logging.MustGetLogger("http")

type MiddlewareAPI struct {
	ErrorService  *raven.Client  `inject:""`
	ConfigService *config.Config `inject:""`
}

func (di *MiddlewareAPI) CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Requested-With, Content-Length, Accept-Encoding, Authorization")
		c.Writer.Header().Set("Access-Control-Max-Age", "3600")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	}
}

// RequestLog tags every request with an id and logs it once served.
func (di *MiddlewareAPI) RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewV4().String()
		started := time.Now()
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-Id", id)

		c.Next()

		log.Infof("%s %s	status=%d took=%s request=%s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(started), id)
	}
}

func (di *MiddlewareAPI) ErrorTracking(debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tags := map[string]string{
			"config_file": deps.EnvFile(),
		}

		defer func() {
			packet := exceptions.Packet(recover())
			if packet == nil {
				return
			}

			log.Errorf("panic recovered	request=%s err=%s", c.GetString("request_id"), packet.Message)
			if debug == false && di.ErrorService != nil {
				di.ErrorService.Capture(packet, tags)
			}

			c.AbortWithStatusJSON(500, gin.H{"status": "error", "message": "Internal server error"})
		}()

		c.Next()
	}
}

// Authorization reads the bearer token when present and exposes its user.
func (di *MiddlewareAPI) Authorization() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Request.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}

		secret := di.ConfigService.UString("application.secret")
		token, err := jwt.Parse(header[7:], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})

		switch e := err.(type) {
		case nil:
		case *jwt.ValidationError:
			if e.Errors&jwt.ValidationErrorExpired != 0 {
				c.AbortWithStatusJSON(401, gin.H{"status": "error", "message": "Token expired, request new one"})
				return
			}
			c.AbortWithStatusJSON(401, gin.H{"status": "error", "message": "Error parsing token"})
			return
		default:
			c.AbortWithStatusJSON(401, gin.H{"status": "error", "message": "Error parsing token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			c.AbortWithStatusJSON(401, gin.H{"status": "error", "message": "Invalid token"})
			return
		}
		id, _ := claims["user_id"].(string)
		if !bson.IsObjectIdHex(id) {
			c.AbortWithStatusJSON(401, gin.H{"status": "error", "message": "Invalid token subject"})
			return
		}

		c.Set("user_id", id)
		c.Set("userID", bson.ObjectIdHex(id))
		c.Next()
	}
}

func (di *MiddlewareAPI) NeedAuthorization() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("userID"); !exists {
			c.AbortWithStatusJSON(401, gin.H{"status": "error", "message": "Auth method required"})
			return
		}
		c.Next()
	}
}
